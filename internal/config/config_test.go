package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
shutdown:
  backend: custom
  timeout: 3s
  schedule_command: "systemctl poweroff --when=+{seconds}"
  cancel_command: "systemctl poweroff --when=cancel"
notify:
  desktop: true
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendCustom, cfg.Shutdown.Backend)
	assert.Equal(t, 3*time.Second, cfg.Shutdown.Timeout)
	assert.Equal(t, "systemctl poweroff --when=+{seconds}", cfg.Shutdown.ScheduleCommand)
	assert.True(t, cfg.Notify.Desktop)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:7070", cfg.Web.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMER_SHUTDOWN_BACKEND", "dryrun")
	t.Setenv("SHUTDOWN_TIMER_NOTIFY_TELEGRAM_ENABLED", "true")
	t.Setenv("SHUTDOWN_TIMER_NOTIFY_TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("SHUTDOWN_TIMER_NOTIFY_TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, BackendDryRun, cfg.Shutdown.Backend)
	assert.True(t, cfg.Notify.Telegram.Enabled)
	assert.Equal(t, "123:abc", cfg.Notify.Telegram.BotToken)
	assert.Equal(t, int64(42), cfg.Notify.Telegram.ChatID)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shutdown:\n  backend: reboot\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown.backend must be one of")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"short timeout", func(c *Config) { c.Shutdown.Timeout = 10 * time.Millisecond }, "shutdown.timeout must be at least 1s"},
		{"custom without commands", func(c *Config) { c.Shutdown.Backend = BackendCustom }, "shutdown.schedulecommand is required"},
		{"telegram without token", func(c *Config) { c.Notify.Telegram.Enabled = true; c.Notify.Telegram.ChatID = 1 }, "notify.telegram.bottoken is required"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level must be one of"},
		{"bad addr", func(c *Config) { c.Web.Addr = "localhost" }, "web.addr must be host:port"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if tc.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Shutdown.Backend = BackendLinux
	cfg.Shutdown.Force = true
	cfg.Shutdown.Timeout = 30 * time.Second
	cfg.Web.Addr = "0.0.0.0:8080"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Format = "xml"
	assert.Error(t, Save(filepath.Join(t.TempDir(), "config.yaml"), cfg))
	assert.Error(t, Save("", DefaultConfig()))
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SHUTDOWN_TIMER_NOTIFY_TELEGRAM_BOT_TOKEN.
const EnvPrefix = "SHUTDOWN_TIMER"

// Backend names accepted by shutdown.backend.
const (
	BackendAuto    = "auto"
	BackendWindows = "windows"
	BackendLinux   = "linux"
	BackendDarwin  = "darwin"
	BackendCustom  = "custom"
	BackendDryRun  = "dryrun"
)

// Config represents the persisted user preferences.
type Config struct {
	Shutdown ShutdownConfig `mapstructure:"shutdown"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Log      LogConfig      `mapstructure:"log"`
	Web      WebConfig      `mapstructure:"web"`
}

type ShutdownConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=auto windows linux darwin custom dryrun"`
	Force   bool          `mapstructure:"force"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s"`
	// ScheduleCommand and CancelCommand are used by the custom backend.
	// {seconds} and {minutes} are substituted before the command runs.
	ScheduleCommand string `mapstructure:"schedule_command" validate:"required_if=Backend custom"`
	CancelCommand   string `mapstructure:"cancel_command" validate:"required_if=Backend custom"`
}

type NotifyConfig struct {
	Desktop  bool           `mapstructure:"desktop"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token" validate:"required_if=Enabled true"`
	ChatID   int64  `mapstructure:"chat_id" validate:"required_if=Enabled true"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=error warn info debug trace"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr" validate:"hostname_port"`
}

// DefaultConfig returns the initial configuration.
func DefaultConfig() Config {
	return Config{
		Shutdown: ShutdownConfig{
			Backend: BackendAuto,
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Web: WebConfig{
			Addr: "127.0.0.1:7070",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	for key, value := range flatten(d) {
		v.SetDefault(key, value)
	}
}

// flatten lists every key viper knows about; AutomaticEnv only resolves
// keys that have been registered.
func flatten(c Config) map[string]any {
	return map[string]any{
		"shutdown.backend":          c.Shutdown.Backend,
		"shutdown.force":            c.Shutdown.Force,
		"shutdown.timeout":          c.Shutdown.Timeout,
		"shutdown.schedule_command": c.Shutdown.ScheduleCommand,
		"shutdown.cancel_command":   c.Shutdown.CancelCommand,
		"notify.desktop":            c.Notify.Desktop,
		"notify.telegram.enabled":   c.Notify.Telegram.Enabled,
		"notify.telegram.bot_token": c.Notify.Telegram.BotToken,
		"notify.telegram.chat_id":   c.Notify.Telegram.ChatID,
		"log.level":                 c.Log.Level,
		"log.format":                c.Log.Format,
		"web.addr":                  c.Web.Addr,
	}
}

// Load reads the YAML file at path, applies .env and environment
// overrides, and validates the result. A missing file yields defaults.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if _, err := os.Stat(path); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save validates cfg and writes it to path. Parent directories are created
// automatically.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("path is required")
	}
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range flatten(cfg) {
		if d, ok := value.(time.Duration); ok {
			value = d.String()
		}
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

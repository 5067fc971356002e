package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shutdown-timer/internal/config"
	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
	"shutdown-timer/internal/usecase"
)

type stubController struct{ mock.Mock }

func (c *stubController) Schedule(ctx context.Context, seconds int64) error {
	return c.Called(seconds).Error(0)
}

func (c *stubController) Cancel(ctx context.Context) error { return c.Called().Error(0) }

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, domain.Notification) {}

// withStubs points the CLI at a temp config file and a stubbed controller.
func withStubs(t *testing.T) *stubController {
	t.Helper()
	ctrl := &stubController{}
	prevFactory, prevPath := newDispatcher, cfgPath
	newDispatcher = func(config.Config) (usecase.CommandDispatcher, error) {
		return usecase.NewCommandDispatcher(ctrl, discardNotifier{})
	}
	cfgPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() {
		newDispatcher, cfgPath = prevFactory, prevPath
		logging.SetVerbosity(0)
	})
	return ctrl
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := executeArgs(args, &out)
	return out.String(), err
}

func TestQueryCommand(t *testing.T) {
	withStubs(t)

	out, err := run(t, "query", "2h")
	require.NoError(t, err)
	assert.Equal(t, "1. Schedule shutdown in 2 hours\n   Click to shut down after 2 hours.\n", out)

	out, err = run(t, "query")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Shutdown Computer")
	assert.Contains(t, out, "2. Cancel Scheduled Shutdown")
}

func TestQueryDoesNotBuildAdapters(t *testing.T) {
	withStubs(t)
	newDispatcher = func(config.Config) (usecase.CommandDispatcher, error) {
		return nil, errors.New("telegram bot: no such host")
	}

	out, err := run(t, "query", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Schedule shutdown in 10 minutes")

	var buf bytes.Buffer
	v := 0
	assert.False(t, handleShellLine("2h", &buf, &v))
	assert.Contains(t, buf.String(), "Schedule shutdown in 2 hours")
	assert.NotContains(t, buf.String(), "command error")
}

func TestScheduleNegativeDurationReachesParser(t *testing.T) {
	ctrl := withStubs(t)

	_, err := run(t, "schedule", "-5m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not parse '-5m'")

	_, err = run(t, "in", "-v", "-10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not parse '-10'")
	ctrl.AssertNotCalled(t, "Schedule", mock.Anything)
}

func TestDurationArgs(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"schedule", "5m"}, []string{"schedule", "5m"}},
		{[]string{"schedule", "-5m"}, []string{"schedule", "--", "-5m"}},
		{[]string{"-v", "schedule", "-1", "h"}, []string{"-v", "schedule", "--", "-1", "h"}},
		{[]string{"query", "--", "-5m"}, []string{"query", "--", "-5m"}},
		{[]string{"config", "set", "--backend", "dryrun"}, []string{"config", "set", "--backend", "dryrun"}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, durationArgs(tc.in))
	}
}

func TestScheduleCommand(t *testing.T) {
	ctrl := withStubs(t)
	ctrl.On("Schedule", int64(90)).Return(nil).Once()

	out, err := run(t, "schedule", "90", "s")
	require.NoError(t, err)
	assert.Equal(t, "Shutdown Scheduled: Your computer will shut down in 1 minute.\n", out)
	ctrl.AssertExpectations(t)
}

func TestScheduleCommandReportsFailures(t *testing.T) {
	ctrl := withStubs(t)
	ctrl.On("Schedule", int64(600)).Return(errors.New("not permitted")).Once()

	_, err := run(t, "schedule", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not parse 'abc'")

	_, err = run(t, "in", "10")
	require.Error(t, err)
	assert.Equal(t, "Could not schedule shutdown: not permitted", err.Error())
	ctrl.AssertExpectations(t)
}

func TestCancelCommand(t *testing.T) {
	ctrl := withStubs(t)
	ctrl.On("Cancel").Return(nil).Once()

	out, err := run(t, "cancel")
	require.NoError(t, err)
	assert.Equal(t, "Shutdown Canceled: Any pending shutdown has been canceled.\n", out)
	ctrl.AssertExpectations(t)
}

func TestConfigSetThenGet(t *testing.T) {
	withStubs(t)

	_, err := run(t, "config", "set", "--backend", "dryrun", "--timeout", "3s", "--desktop")
	require.NoError(t, err)

	out, err := run(t, "config", "get")
	require.NoError(t, err)
	assert.Contains(t, out, `"backend": "dryrun"`)
	assert.Contains(t, out, `"timeout": "3s"`)
	assert.Contains(t, out, `"desktop": true`)

	_, err = run(t, "config", "set", "--backend", "reboot")
	assert.Error(t, err)
}

func TestShellLines(t *testing.T) {
	ctrl := withStubs(t)
	ctrl.On("Cancel").Return(nil).Once()
	v := 0
	var out bytes.Buffer

	assert.False(t, handleShellLine("5m", &out, &v))
	assert.Contains(t, out.String(), "Schedule shutdown in 5 minutes")

	out.Reset()
	assert.False(t, handleShellLine("-5m", &out, &v))
	assert.Contains(t, out.String(), "Invalid time format or value")

	out.Reset()
	assert.False(t, handleShellLine("cancel", &out, &v))
	assert.Contains(t, out.String(), "Shutdown Canceled")

	out.Reset()
	assert.False(t, handleShellLine("log --level debug", &out, &v))
	assert.Equal(t, 2, v)
	assert.Equal(t, "debug", logging.LevelName())

	out.Reset()
	assert.False(t, handleShellLine(`"unterminated`, &out, &v))
	assert.Contains(t, out.String(), "Parse error")

	assert.True(t, handleShellLine("exit", &out, &v))
	ctrl.AssertExpectations(t)
}

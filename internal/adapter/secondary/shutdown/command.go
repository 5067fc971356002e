package shutdown

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"

	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Backend holds the command lines of one platform shutdown facility.
type Backend struct {
	Name     string
	schedule func(seconds int64) []string
	cancel   []string
}

// ScheduleArgs returns the argv that schedules a shutdown after seconds.
func (b Backend) ScheduleArgs(seconds int64) []string {
	return b.schedule(seconds)
}

// CancelArgs returns the argv that aborts a pending shutdown.
func (b Backend) CancelArgs() []string {
	return append([]string(nil), b.cancel...)
}

// WindowsBackend drives shutdown.exe, which takes the delay in seconds.
func WindowsBackend(force bool) Backend {
	return Backend{
		Name: "windows",
		schedule: func(seconds int64) []string {
			args := []string{"shutdown.exe", "/s", "/t", strconv.FormatInt(seconds, 10)}
			if force {
				args = append(args, "/f")
			}
			return args
		},
		cancel: []string{"shutdown.exe", "/a"},
	}
}

// LinuxBackend drives shutdown(8). It only has minute granularity, so the
// delay is rounded up.
func LinuxBackend() Backend {
	return Backend{
		Name:     "linux",
		schedule: unixSchedule,
		cancel:   []string{"shutdown", "-c"},
	}
}

// DarwinBackend drives the BSD shutdown(8). A pending shutdown is a
// background shutdown process, so cancelling kills it.
func DarwinBackend() Backend {
	return Backend{
		Name:     "darwin",
		schedule: unixSchedule,
		cancel:   []string{"killall", "shutdown"},
	}
}

func unixSchedule(seconds int64) []string {
	return []string{"shutdown", "-h", "+" + strconv.FormatInt(ceilMinutes(seconds), 10)}
}

func ceilMinutes(seconds int64) int64 {
	return (seconds + 59) / 60
}

// CustomBackend builds a backend from user supplied command templates.
// The templates are tokenized with shell quoting rules; {seconds} and
// {minutes} are substituted per token.
func CustomBackend(scheduleTpl, cancelTpl string) (Backend, error) {
	schedule, err := shlex.Split(scheduleTpl)
	if err != nil {
		return Backend{}, fmt.Errorf("parse schedule command: %w", err)
	}
	cancel, err := shlex.Split(cancelTpl)
	if err != nil {
		return Backend{}, fmt.Errorf("parse cancel command: %w", err)
	}
	if len(schedule) == 0 || len(cancel) == 0 {
		return Backend{}, fmt.Errorf("custom backend needs both schedule and cancel commands")
	}
	return Backend{
		Name: "custom",
		schedule: func(seconds int64) []string {
			r := strings.NewReplacer(
				"{seconds}", strconv.FormatInt(seconds, 10),
				"{minutes}", strconv.FormatInt(ceilMinutes(seconds), 10),
			)
			args := make([]string, len(schedule))
			for i, tok := range schedule {
				args[i] = r.Replace(tok)
			}
			return args
		},
		cancel: cancel,
	}, nil
}

// CommandController implements domain.ShutdownController by running the
// platform shutdown command.
// This is a secondary adapter.
type CommandController struct {
	backend Backend
	timeout time.Duration
	run     Runner
	log     zerolog.Logger
}

// Option customizes a CommandController.
type Option func(*CommandController)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(c *CommandController) { c.run = r }
}

// WithTimeout bounds every command invocation.
func WithTimeout(d time.Duration) Option {
	return func(c *CommandController) { c.timeout = d }
}

// NewCommandController creates a controller for the given backend.
func NewCommandController(backend Backend, opts ...Option) domain.ShutdownController {
	c := &CommandController{
		backend: backend,
		timeout: 10 * time.Second,
		run:     execRunner,
		log:     logging.Component("shutdown"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedule runs the backend schedule command.
func (c *CommandController) Schedule(ctx context.Context, seconds int64) error {
	if seconds <= 0 {
		return fmt.Errorf("delay must be positive, got %d", seconds)
	}
	return c.exec(ctx, c.backend.ScheduleArgs(seconds))
}

// Cancel runs the backend cancel command.
func (c *CommandController) Cancel(ctx context.Context) error {
	return c.exec(ctx, c.backend.CancelArgs())
}

func (c *CommandController) exec(ctx context.Context, argv []string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.log.Debug().Str("backend", c.backend.Name).Strs("argv", argv).Msg("running shutdown command")
	output, err := c.run(ctx, argv[0], argv[1:]...)
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", argv[0], err, strings.TrimSpace(string(output)))
	}
	c.log.Trace().Str("output", string(output)).Msg("shutdown command finished")
	return nil
}

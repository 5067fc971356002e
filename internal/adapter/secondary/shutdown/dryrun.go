package shutdown

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
)

// DryRunController implements domain.ShutdownController without touching the OS.
// It logs the command the wrapped backend would have run. Useful for testing
// or for trying the launcher on a machine that must stay up.
type DryRunController struct {
	backend Backend
	log     zerolog.Logger
}

// NewDryRunController creates a new dry-run controller.
func NewDryRunController(backend Backend) domain.ShutdownController {
	return &DryRunController{backend: backend, log: logging.Component("shutdown")}
}

// Schedule logs the schedule command and always succeeds.
func (d *DryRunController) Schedule(ctx context.Context, seconds int64) error {
	d.log.Warn().Int64("seconds", seconds).
		Str("command", strings.Join(d.backend.ScheduleArgs(seconds), " ")).
		Msg("dry run: shutdown not scheduled")
	return nil
}

// Cancel logs the cancel command and always succeeds.
func (d *DryRunController) Cancel(ctx context.Context) error {
	d.log.Warn().
		Str("command", strings.Join(d.backend.CancelArgs(), " ")).
		Msg("dry run: shutdown not cancelled")
	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
)

// CommandDispatcher is the primary port for launcher operations.
// This represents the application's use cases.
type CommandDispatcher interface {
	Evaluate(query string) domain.Intent
	Results(query string) []domain.Result
	CancelIntent() domain.Intent
	Execute(ctx context.Context, intent domain.Intent) domain.Outcome
}

// dispatcherInteractor implements CommandDispatcher.
// It depends only on domain layer and secondary ports and keeps no state
// between calls.
type dispatcherInteractor struct {
	controller domain.ShutdownController
	notifier   domain.Notifier
	service    *domain.CommandService
	log        zerolog.Logger
}

// NewCommandDispatcher creates a new dispatcher.
// Dependencies are injected (secondary ports).
func NewCommandDispatcher(
	controller domain.ShutdownController,
	notifier domain.Notifier,
) (CommandDispatcher, error) {
	if controller == nil || notifier == nil {
		return nil, errors.New("controller and notifier are required")
	}
	return &dispatcherInteractor{
		controller: controller,
		notifier:   notifier,
		service:    domain.NewCommandService(),
		log:        logging.Component("dispatcher"),
	}, nil
}

// Evaluate resolves a raw query into an intent.
func (d *dispatcherInteractor) Evaluate(query string) domain.Intent {
	return d.service.Evaluate(query)
}

// Results returns the records the host should present for query.
func (d *dispatcherInteractor) Results(query string) []domain.Result {
	return d.service.Results(query)
}

// CancelIntent is the explicit cancel action; it never goes through the parser.
func (d *dispatcherInteractor) CancelIntent() domain.Intent {
	return domain.CancelShutdown()
}

// Execute performs the intent. Controller errors and panics are converted
// into a failure outcome and a notification; nothing is returned or raised
// upward.
func (d *dispatcherInteractor) Execute(ctx context.Context, intent domain.Intent) domain.Outcome {
	id := uuid.NewString()
	log := d.log.With().Str("id", id).Str("intent", intent.Kind.String()).Logger()

	switch intent.Kind {
	case domain.IntentScheduleShutdown:
		err := safeCall(func() error { return d.controller.Schedule(ctx, intent.Seconds) })
		if err != nil {
			log.Error().Err(err).Int64("seconds", intent.Seconds).Msg("schedule failed")
			return d.report(ctx, log, id, failure("Could not schedule shutdown", err))
		}
		log.Info().Int64("seconds", intent.Seconds).Msg("shutdown scheduled")
		return d.report(ctx, log, id, domain.Outcome{
			Status:  domain.OutcomeSuccess,
			Title:   "Shutdown Scheduled",
			Message: fmt.Sprintf("Your computer will shut down in %s.", domain.FormatDuration(intent.Seconds)),
		})

	case domain.IntentCancelShutdown:
		if err := safeCall(func() error { return d.controller.Cancel(ctx) }); err != nil {
			log.Error().Err(err).Msg("cancel failed")
			return d.report(ctx, log, id, failure("Could not cancel shutdown", err))
		}
		log.Info().Msg("shutdown cancelled")
		return d.report(ctx, log, id, domain.Outcome{
			Status:  domain.OutcomeSuccess,
			Title:   "Shutdown Canceled",
			Message: "Any pending shutdown has been canceled.",
		})

	case domain.IntentReportInvalidInput:
		log.Debug().Str("input", intent.Input).Msg("rejected query")
		return domain.Outcome{
			ID:      id,
			Status:  domain.OutcomeFailure,
			Title:   "Invalid time format or value",
			Message: domain.InvalidInputMessage(intent.Input),
		}

	default:
		return domain.Outcome{
			ID:      id,
			Status:  domain.OutcomeSuccess,
			Title:   "Shutdown Computer",
			Message: domain.PromptMessage(),
		}
	}
}

// report sends the single notification belonging to an executed action.
// A notifier panic is logged and does not change the outcome.
func (d *dispatcherInteractor) report(ctx context.Context, log zerolog.Logger, id string, out domain.Outcome) domain.Outcome {
	out.ID = id
	severity := domain.SeverityInfo
	if !out.OK() {
		severity = domain.SeverityError
	}
	d.notify(ctx, log, domain.Notification{Title: out.Title, Message: out.Message, Severity: severity})
	return out
}

func (d *dispatcherInteractor) notify(ctx context.Context, log zerolog.Logger, n domain.Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("notifier panicked")
		}
	}()
	d.notifier.Notify(ctx, n)
}

// safeCall runs a controller call and turns a panic into an error.
func safeCall(call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return call()
}

func failure(prefix string, err error) domain.Outcome {
	return domain.Outcome{
		Status:  domain.OutcomeFailure,
		Title:   "Error",
		Message: fmt.Sprintf("%s: %v", prefix, err),
	}
}

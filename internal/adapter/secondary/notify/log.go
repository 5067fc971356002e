package notify

import (
	"context"

	"github.com/rs/zerolog"

	"shutdown-timer/internal/domain"
	"shutdown-timer/internal/logging"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a notifier backed by the "notify" component logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logging.Component("notify")}
}

func (l *LogNotifier) Notify(ctx context.Context, n domain.Notification) {
	ev := l.log.Info()
	if n.Severity == domain.SeverityError {
		ev = l.log.Error()
	}
	ev.Str("title", n.Title).Msg(n.Message)
}

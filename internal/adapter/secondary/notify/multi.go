package notify

import (
	"context"

	"shutdown-timer/internal/domain"
)

// Multi fans a notification out to every wrapped notifier.
type Multi []domain.Notifier

func (m Multi) Notify(ctx context.Context, n domain.Notification) {
	for _, nt := range m {
		nt.Notify(ctx, n)
	}
}

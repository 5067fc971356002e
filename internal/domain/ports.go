package domain

import "context"

// ShutdownController is a secondary port that defines how to drive the
// platform shutdown facility.
// This interface is defined in the domain layer and implemented by adapters.
type ShutdownController interface {
	// Schedule requests a shutdown after the given delay. A new schedule
	// replaces any previously pending one.
	Schedule(ctx context.Context, seconds int64) error
	// Cancel aborts a pending shutdown. It succeeds when nothing is pending.
	Cancel(ctx context.Context) error
}

// Notifier is a secondary port that delivers user-facing notifications.
// Implementations are fire-and-forget and report their own failures.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

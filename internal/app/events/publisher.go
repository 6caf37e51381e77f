package events

import (
	"context"
	"log/slog"

	"villastay/internal/domain/enquiry"
)

// Publisher forwards enquiry lifecycle events to the notification
// pipeline. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event enquiry.Event) error
}

// Emit publishes best-effort: a nil publisher drops events and a
// publish failure is logged, never surfaced to the guest-facing
// operation that produced it.
func Emit(ctx context.Context, p Publisher, logger *slog.Logger, evs ...enquiry.Event) {
	if p == nil {
		return
	}
	for _, ev := range evs {
		if err := p.Publish(ctx, ev); err != nil && logger != nil {
			logger.Warn("event publish failed", "event", ev.EventName(), "enquiry_id", ev.AggregateID(), "error", err)
		}
	}
}

// Package events publishes committed trip changes to interested listeners
// (notification workers, dashboards). Publishing is fire-and-forget: a failed
// publish never undoes or fails the change that produced the event.
package events

import (
	"context"
	"log/slog"

	"github.com/pkordes/patient-transport/internal/domain"
)

// Publisher delivers trip events.
type Publisher interface {
	Publish(ctx context.Context, ev domain.TripEvent) error
}

// Nop discards every event. Used when no message bus is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, domain.TripEvent) error { return nil }

// Logging wraps a Publisher and logs, instead of returning, its failures.
type Logging struct {
	next Publisher
	log  *slog.Logger
}

// NewLogging returns a Publisher that never fails.
func NewLogging(next Publisher, log *slog.Logger) *Logging {
	return &Logging{next: next, log: log}
}

// Publish implements Publisher. The returned error is always nil.
func (p *Logging) Publish(ctx context.Context, ev domain.TripEvent) error {
	if err := p.next.Publish(ctx, ev); err != nil {
		p.log.WarnContext(ctx, "trip event not published",
			"trip_id", ev.TripID,
			"kind", ev.Kind,
			"error", err,
		)
	}
	return nil
}

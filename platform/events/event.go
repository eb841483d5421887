// Package events carries domain events between modules inside one process.
// The concrete event types live with the domains that emit them
// (internal/events); this package only fixes the contracts and the bus.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a fact that already happened in one of the domain modules.
type Event interface {
	// EventName identifies the event type, e.g. "tenantuser.member_removed".
	// Subscriptions are keyed by this name.
	EventName() string
	// EventID identifies this single occurrence, for log correlation.
	EventID() uuid.UUID
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent carries the occurrence metadata shared by all events. Embed it
// in the concrete type and implement EventName there.
type BaseEvent struct {
	ID        uuid.UUID `json:"eventId"`
	Timestamp time.Time `json:"timestamp"`
}

// EventID identifies this single occurrence.
func (e BaseEvent) EventID() uuid.UUID { return e.ID }

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps a fresh occurrence.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.New(), Timestamp: time.Now()}
}

// Handler consumes the events of a subscribed name.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes published events to their subscribers.
type Bus interface {
	// Publish delivers the event to every subscriber of its name without
	// waiting for them. Subscriber failures never reach the publisher.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event to every subscriber in registration
	// order and reports their combined failures. Used where the publisher
	// must not proceed past a failed subscriber.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers the handler under the event name. One name can
	// carry any number of handlers.
	Subscribe(eventName string, handler Handler)
}

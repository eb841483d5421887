package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"raally_backend/platform/logger"

	"go.uber.org/multierr"
)

type stubEvent struct{ BaseEvent }

func (stubEvent) EventName() string { return "stub.happened" }

func TestNewBaseEventStampsOccurrence(t *testing.T) {
	event := stubEvent{BaseEvent: NewBaseEvent()}
	if event.EventID().String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected a non-zero occurrence id")
	}
	if event.OccurredAt().IsZero() {
		t.Fatal("expected an occurrence timestamp")
	}
}

func TestPublishSyncDeliversInRegistrationOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	var order []string
	bus.Subscribe("stub.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		order = append(order, "first")
		return nil
	}))
	bus.Subscribe("stub.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		order = append(order, "second")
		return nil
	}))
	bus.Subscribe("other.name", HandlerFunc(func(ctx context.Context, event Event) error {
		order = append(order, "unrelated")
		return nil
	}))

	if err := bus.PublishSync(context.Background(), stubEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected ordered delivery to subscribed handlers, got %v", order)
	}
}

func TestPublishSyncCombinesHandlerFailures(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	bus.Subscribe("stub.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return errors.New("first failed")
	}))
	bus.Subscribe("stub.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))
	bus.Subscribe("stub.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		return errors.New("third failed")
	}))

	err := bus.PublishSync(context.Background(), stubEvent{BaseEvent: NewBaseEvent()})
	if err == nil {
		t.Fatal("expected the handler failures to surface")
	}
	if got := multierr.Errors(err); len(got) != 2 {
		t.Fatalf("expected both failures collected, got %v", got)
	}
}

func TestPublishDeliversWithoutBlocking(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	delivered := make(chan Event, 1)
	bus.Subscribe("stub.happened", HandlerFunc(func(ctx context.Context, event Event) error {
		delivered <- event
		return nil
	}))

	sent := stubEvent{BaseEvent: NewBaseEvent()}
	bus.Publish(context.Background(), sent)

	select {
	case got := <-delivered:
		if got.EventID() != sent.EventID() {
			t.Fatalf("expected occurrence %s, got %s", sent.EventID(), got.EventID())
		}
	case <-time.After(time.Second):
		t.Fatal("handler was never invoked")
	}
}

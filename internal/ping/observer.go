package ping

import (
	"context"
	"time"
)

type EventKind string

const (
	EventStarted  EventKind = "ping_started"
	EventResponse EventKind = "ping_response"
	EventFinished EventKind = "ping_finished"
	EventRejected EventKind = "ping_rejected"
)

// Event is emitted to the Observer at each step of a probe.
type Event struct {
	Kind EventKind
	URL  string
	At   time.Time

	// StatusCode is set for EventResponse.
	StatusCode int
	// Result is set for EventFinished.
	Result *Result
	// Err is set for EventRejected.
	Err error
}

// Observer receives probe events. Implementations must be safe for concurrent
// use when the Pinger is shared.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }

// Observers fans an event out to each non-nil observer in order.
type Observers []Observer

func (os Observers) Observe(ctx context.Context, e Event) {
	for _, o := range os {
		if o != nil {
			o.Observe(ctx, e)
		}
	}
}

type nopObserver struct{}

func (nopObserver) Observe(context.Context, Event) {}

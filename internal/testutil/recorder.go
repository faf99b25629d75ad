package testutil

import (
	"sync"

	"github.com/npratt/iqfit/internal/events"
)

// EventRecorder is an events.Emitter that keeps every event it receives.
type EventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

// Emit records the event.
func (r *EventRecorder) Emit(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *EventRecorder) Types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

// Count returns how many events of the given type were recorded.
func (r *EventRecorder) Count(t events.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Type() == t {
			n++
		}
	}
	return n
}

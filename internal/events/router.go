package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the default channel buffer size for subscribers.
const DefaultBufferSize = 100

// Emitter accepts events. The player depends on this rather than on Router
// so tests and embedders can record events directly.
type Emitter interface {
	Emit(event Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit calls f(event).
func (f EmitterFunc) Emit(event Event) { f(event) }

// Discard is an Emitter that drops everything.
var Discard Emitter = EmitterFunc(func(Event) {})

// Router fans events out from the player to every subscriber.
// Delivery never blocks the emitter: a full subscriber misses the event.
type Router struct {
	subscribers []chan Event
	bufferSize  int
	dropped     atomic.Int64
	mu          sync.RWMutex
	closed      bool
}

// NewRouter creates a new event router with the specified default buffer size.
// If bufferSize is 0 or negative, DefaultBufferSize is used.
func NewRouter(bufferSize int) *Router {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Router{bufferSize: bufferSize}
}

// Emit publishes an event to all subscribers. Safe for concurrent use and a
// no-op after Close.
func (r *Router) Emit(event Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	for _, ch := range r.subscribers {
		select {
		case ch <- event:
		default:
			r.dropped.Add(1)
			slog.Warn("event dropped: subscriber channel full",
				"event_type", event.Type(),
				"run_id", event.Run(),
			)
		}
	}
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (r *Router) Dropped() int64 {
	return r.dropped.Load()
}

// Subscribe returns a channel with the router's default buffer size.
// The channel is closed by Unsubscribe or Close.
func (r *Router) Subscribe() <-chan Event {
	return r.SubscribeBuffered(r.bufferSize)
}

// SubscribeBuffered returns a channel with the specified buffer size.
func (r *Router) SubscribeBuffered(size int) <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Event, max(size, 1))
	if r.closed {
		close(ch)
		return ch
	}
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel. Unknown or
// already removed channels are ignored.
func (r *Router) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subscribers {
		if sub == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Close closes every subscriber channel. Safe to call more than once.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for _, ch := range r.subscribers {
		close(ch)
	}
	r.subscribers = nil
}

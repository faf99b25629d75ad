package events

import (
	"sync"
	"testing"
	"time"
)

func stepEvent(i int) Event {
	return &StepStartEvent{
		BaseEvent: NewPlayerEvent(EventStepStart, "run-1"),
		Index:     i,
		Name:      "Push-ups",
	}
}

func drain(ch <-chan Event) int {
	count := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return count
			}
			count++
		default:
			return count
		}
	}
}

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"default buffer size", 0, DefaultBufferSize},
		{"negative buffer size uses default", -10, DefaultBufferSize},
		{"custom buffer size", 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(tt.size)
			if r.bufferSize != tt.want {
				t.Errorf("bufferSize = %d, want %d", r.bufferSize, tt.want)
			}
		})
	}
}

func TestRouterEmitSubscribe(t *testing.T) {
	t.Run("single subscriber receives event", func(t *testing.T) {
		r := NewRouter(10)
		defer r.Close()

		ch := r.Subscribe()
		r.Emit(stepEvent(3))

		select {
		case received := <-ch:
			step, ok := received.(*StepStartEvent)
			if !ok {
				t.Fatalf("expected *StepStartEvent, got %T", received)
			}
			if step.Index != 3 || step.Run() != "run-1" {
				t.Errorf("got index %d run %q", step.Index, step.Run())
			}
		case <-time.After(time.Second):
			t.Error("timeout waiting for event")
		}
	})

	t.Run("multiple subscribers each receive all events", func(t *testing.T) {
		r := NewRouter(10)
		defer r.Close()

		chans := []<-chan Event{r.Subscribe(), r.Subscribe(), r.Subscribe()}
		for i := 0; i < 3; i++ {
			r.Emit(stepEvent(i))
		}
		for i, ch := range chans {
			if got := drain(ch); got != 3 {
				t.Errorf("subscriber %d got %d events, want 3", i, got)
			}
		}
	})
}

func TestRouterUnsubscribe(t *testing.T) {
	r := NewRouter(10)
	defer r.Close()

	ch1 := r.Subscribe()
	ch2 := r.Subscribe()
	r.Unsubscribe(ch1)
	r.Emit(stepEvent(0))

	if _, ok := <-ch1; ok {
		t.Error("expected ch1 to be closed")
	}
	if got := drain(ch2); got != 1 {
		t.Errorf("ch2 got %d events, want 1", got)
	}

	// Unknown channels are ignored.
	r.Unsubscribe(make(chan Event))
}

func TestRouterClose(t *testing.T) {
	r := NewRouter(10)
	ch := r.Subscribe()

	r.Close()
	r.Close()
	r.Emit(stepEvent(0))

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed")
	}
	if _, ok := <-r.Subscribe(); ok {
		t.Error("subscribe after close should return a closed channel")
	}
}

func TestRouterFullBufferDrops(t *testing.T) {
	r := NewRouter(2)
	defer r.Close()

	ch := r.SubscribeBuffered(2)
	for i := 0; i < 10; i++ {
		r.Emit(stepEvent(i))
	}

	if got := drain(ch); got != 2 {
		t.Errorf("buffered %d events, want 2", got)
	}
	if r.Dropped() != 8 {
		t.Errorf("Dropped() = %d, want 8", r.Dropped())
	}
}

func TestRouterConcurrency(t *testing.T) {
	r := NewRouter(1000)
	defer r.Close()

	subs := make([]<-chan Event, 5)
	for i := range subs {
		subs[i] = r.Subscribe()
	}

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				r.Emit(stepEvent(i))
			}
		}()
	}
	wg.Wait()

	for i, ch := range subs {
		if got := drain(ch); got != 200 {
			t.Errorf("subscriber %d got %d events, want 200", i, got)
		}
	}
}

func TestEmitterFunc(t *testing.T) {
	var got []EventType
	e := EmitterFunc(func(ev Event) { got = append(got, ev.Type()) })
	e.Emit(stepEvent(0))
	Discard.Emit(stepEvent(1))

	if len(got) != 1 || got[0] != EventStepStart {
		t.Errorf("got %v", got)
	}
}

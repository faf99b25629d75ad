// Package timer provides the countdown clock bound to a single session step.
//
// The engine never schedules anything itself. A scheduler (the bubbletea
// program, or the line-mode ticker) delivers one Tick per elapsed second,
// stamped with the generation that was current when the tick was scheduled.
// Arming, pausing and resetting all bump the generation, so a tick that was
// already in flight when the engine changed state is recognized as stale and
// ignored.
package timer

// TickResult describes what a delivered tick did.
type TickResult int

const (
	// TickStale means the tick belonged to an earlier generation or arrived
	// while the engine was disarmed. Nothing changed.
	TickStale TickResult = iota
	// TickCounted means one second was consumed and time remains.
	TickCounted
	// TickExpired means the last second was consumed. The engine disarmed itself.
	TickExpired
)

func (r TickResult) String() string {
	switch r {
	case TickCounted:
		return "counted"
	case TickExpired:
		return "expired"
	default:
		return "stale"
	}
}

// Engine is a one-second-resolution countdown. The zero value is a disarmed
// engine with nothing remaining.
type Engine struct {
	duration  int
	remaining int
	armed     bool
	gen       uint64
}

// New returns an engine loaded with the given duration.
func New(durationSeconds int) *Engine {
	e := &Engine{}
	e.Reset(durationSeconds)
	return e
}

// Reset loads a new duration and disarms. Negative durations clamp to zero.
func (e *Engine) Reset(durationSeconds int) {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	e.duration = durationSeconds
	e.remaining = durationSeconds
	e.armed = false
	e.gen++
}

// Seek sets the remaining time within the loaded duration and disarms,
// leaving Duration untouched so Elapsed and Fraction reflect the seconds
// already spent. Values outside [0, Duration] are clamped.
func (e *Engine) Seek(remainingSeconds int) {
	if remainingSeconds < 0 {
		remainingSeconds = 0
	}
	if remainingSeconds > e.duration {
		remainingSeconds = e.duration
	}
	e.remaining = remainingSeconds
	e.armed = false
	e.gen++
}

// Start arms the engine. It is a no-op, returning false, when the engine is
// already armed or has nothing left to count.
func (e *Engine) Start() bool {
	if e.armed || e.remaining == 0 {
		return false
	}
	e.armed = true
	e.gen++
	return true
}

// Pause disarms the engine, keeping the remaining time exactly. It returns
// false when the engine was not armed.
func (e *Engine) Pause() bool {
	if !e.armed {
		return false
	}
	e.armed = false
	e.gen++
	return true
}

// Tick consumes one second if gen is the current generation and the engine
// is armed.
func (e *Engine) Tick(gen uint64) TickResult {
	if !e.armed || gen != e.gen {
		return TickStale
	}
	e.remaining--
	if e.remaining > 0 {
		return TickCounted
	}
	e.remaining = 0
	e.armed = false
	e.gen++
	return TickExpired
}

// Generation identifies the current arm/pause/reset epoch. Schedulers stamp
// each tick with it.
func (e *Engine) Generation() uint64 { return e.gen }

// Armed reports whether the engine is counting.
func (e *Engine) Armed() bool { return e.armed }

// Remaining returns the seconds left.
func (e *Engine) Remaining() int { return e.remaining }

// Duration returns the seconds loaded by the last Reset.
func (e *Engine) Duration() int { return e.duration }

// Elapsed returns the seconds consumed since the last Reset.
func (e *Engine) Elapsed() int { return e.duration - e.remaining }

// Fraction returns the consumed share of the duration in [0, 1].
func (e *Engine) Fraction() float64 {
	if e.duration == 0 {
		return 0
	}
	return float64(e.Elapsed()) / float64(e.duration)
}

// Package player sequences a session's steps, drives the step timer and
// reports completion to the stats store and the embedding caller.
//
// A Player is not safe for concurrent use. Both front ends (the bubbletea
// program and the line-mode loop) call it from a single goroutine and feed it
// ticks through Tick, so every transition is a synchronous reaction to one
// input.
package player

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/npratt/iqfit/internal/events"
	"github.com/npratt/iqfit/internal/session"
	"github.com/npratt/iqfit/internal/stats"
	"github.com/npratt/iqfit/internal/timer"
)

// State is the playback state of a Player.
type State int

const (
	// StateActive means the cursor is on a step.
	StateActive State = iota
	// StateFinished means every step has been passed. Only Restart and
	// Complete do anything here.
	StateFinished
	// StateClosed means the player was completed or exited. Every operation
	// is a no-op.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Trigger records why the cursor left a step.
type Trigger string

const (
	TriggerSkip   Trigger = "skip"
	TriggerExpiry Trigger = "expiry"
)

// Resume is handed to the back callback when the user leaves mid-session, so
// the caller can offer to pick the session up again later.
type Resume struct {
	Session          *session.Session
	Index            int
	SecondsRemaining int
}

// Player holds the playback state for one session.
type Player struct {
	sess   *session.Session
	engine *timer.Engine
	index  int
	closed bool

	// elapsed counts the seconds consumed by ticks in the current traversal.
	elapsed int

	autoStart  bool
	resume     *Resume
	store      stats.Store
	onComplete func()
	onBack     func(*Resume)
	emitter    events.Emitter
	runID      string
	logger     *slog.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithAutoStart arms the timer every time the cursor lands on a timed step.
func WithAutoStart(enabled bool) Option {
	return func(p *Player) {
		p.autoStart = enabled
	}
}

// WithStatsStore sets the store whose counter is incremented on completion.
func WithStatsStore(store stats.Store) Option {
	return func(p *Player) {
		p.store = store
	}
}

// WithOnComplete sets the hook invoked once when the user confirms completion.
func WithOnComplete(fn func()) Option {
	return func(p *Player) {
		p.onComplete = fn
	}
}

// WithOnBack sets the hook invoked whenever the player is left. The Resume is
// nil after completion and when nothing was left to play.
func WithOnBack(fn func(*Resume)) Option {
	return func(p *Player) {
		p.onBack = fn
	}
}

// WithEmitter sets the destination for playback events.
func WithEmitter(e events.Emitter) Option {
	return func(p *Player) {
		if e != nil {
			p.emitter = e
		}
	}
}

// WithRunID overrides the generated playback run id.
func WithRunID(id string) Option {
	return func(p *Player) {
		if id != "" {
			p.runID = id
		}
	}
}

// WithResume positions the player where an earlier playback was left. A
// resume point for a different session or an out-of-range step is ignored.
func WithResume(r *Resume) Option {
	return func(p *Player) {
		p.resume = r
	}
}

// WithLogger sets the logger used for failures that are not surfaced.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New mounts a player on sess at the first step. A nil session plays the
// default session.
func New(sess *session.Session, opts ...Option) *Player {
	if sess == nil {
		sess = session.Default(session.Meta{})
	}
	p := &Player{
		sess:    sess,
		engine:  timer.New(0),
		emitter: events.Discard,
		runID:   uuid.NewString(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	meta := sess.Meta()
	p.emit(&events.SessionStartEvent{
		BaseEvent: events.NewPlayerEvent(events.EventSessionStart, p.runID),
		ContentID: meta.ID,
		Title:     meta.Title,
		Activity:  string(meta.Activity),
		Steps:     sess.Len(),
		AutoStart: p.autoStart,
	})

	r := p.resume
	p.resume = nil
	if !r.matches(sess) {
		p.enter(0)
		return p
	}

	autoStart := p.autoStart
	p.autoStart = false
	p.enter(r.Index)
	p.autoStart = autoStart
	if step, _ := sess.Step(r.Index); r.SecondsRemaining > 0 && r.SecondsRemaining < step.Countdown() {
		p.engine.Seek(r.SecondsRemaining)
	}
	if p.autoStart {
		p.arm()
	}
	return p
}

// matches reports whether r is a usable resume point for sess.
func (r *Resume) matches(sess *session.Session) bool {
	if r == nil || r.Session == nil || r.Index <= 0 || r.Index >= sess.Len() {
		return false
	}
	if r.Session == sess {
		return true
	}
	return sess.ID() != "" && r.Session.ID() == sess.ID() && r.Session.Len() == sess.Len()
}

// enter moves the cursor to index i, which may be Len() for Finished, and
// resets the timer to that step's declared duration.
func (p *Player) enter(i int) {
	p.index = i
	step, ok := p.sess.Step(i)
	if !ok {
		p.engine.Reset(0)
		p.emit(&events.SessionFinishedEvent{
			BaseEvent:      events.NewPlayerEvent(events.EventSessionFinished, p.runID),
			ElapsedSeconds: p.elapsed,
		})
		return
	}

	p.engine.Reset(step.DurationSeconds)
	p.emit(&events.StepStartEvent{
		BaseEvent:       events.NewPlayerEvent(events.EventStepStart, p.runID),
		Index:           i,
		Name:            step.Name,
		Kind:            string(step.Kind),
		DurationSeconds: step.Countdown(),
	})
	if p.autoStart {
		p.arm()
	}
}

// arm starts the engine and reports whether it was armed by this call.
// Untimed steps keep their declared duration on display but never count.
func (p *Player) arm() bool {
	if st, ok := p.sess.Step(p.index); !ok || !st.Timed() || !p.engine.Start() {
		return false
	}
	p.emit(&events.TimerEvent{
		BaseEvent:        events.NewPlayerEvent(events.EventTimerStart, p.runID),
		Index:            p.index,
		SecondsRemaining: p.engine.Remaining(),
	})
	return true
}

// Start arms the countdown of the current step. It does nothing when the
// timer already runs, when the step is untimed or spent, or when the session
// is finished or closed.
func (p *Player) Start() bool {
	if p.State() != StateActive {
		return false
	}
	return p.arm()
}

// Pause disarms the countdown, keeping the remaining time.
func (p *Player) Pause() bool {
	if p.State() != StateActive || !p.engine.Pause() {
		return false
	}
	p.emit(&events.TimerEvent{
		BaseEvent:        events.NewPlayerEvent(events.EventTimerPause, p.runID),
		Index:            p.index,
		SecondsRemaining: p.engine.Remaining(),
	})
	return true
}

// Toggle pauses a running countdown, starts a stopped one, and restarts a
// finished session.
func (p *Player) Toggle() bool {
	switch p.State() {
	case StateFinished:
		return p.Restart()
	case StateActive:
		if p.engine.Armed() {
			return p.Pause()
		}
		return p.Start()
	default:
		return false
	}
}

// Skip advances past the current step at the user's request.
func (p *Player) Skip() bool {
	return p.Advance(TriggerSkip)
}

// Advance moves the cursor to the next step, or to Finished from the last
// step. Skip and expiry share this transition.
func (p *Player) Advance(trigger Trigger) bool {
	if p.State() != StateActive {
		return false
	}
	p.emit(&events.StepAdvanceEvent{
		BaseEvent:        events.NewPlayerEvent(events.EventStepAdvance, p.runID),
		From:             p.index,
		Trigger:          string(trigger),
		SecondsRemaining: p.engine.Remaining(),
	})
	p.enter(p.index + 1)
	return true
}

// Tick delivers one elapsed second stamped with the generation returned by
// TimerGen when the tick was scheduled. Expiry advances the cursor.
func (p *Player) Tick(gen uint64) timer.TickResult {
	if p.State() != StateActive {
		return timer.TickStale
	}
	result := p.engine.Tick(gen)
	switch result {
	case timer.TickCounted:
		p.elapsed++
	case timer.TickExpired:
		p.elapsed++
		p.Advance(TriggerExpiry)
	}
	return result
}

// Restart plays a finished session again from the first step with the timer
// armed. The timer stays disarmed when the first step is untimed.
func (p *Player) Restart() bool {
	if p.State() != StateFinished {
		return false
	}
	p.emit(&events.SessionRestartEvent{
		BaseEvent: events.NewPlayerEvent(events.EventSessionRestart, p.runID),
	})
	p.elapsed = 0
	p.enter(0)
	p.arm()
	return true
}

// Complete confirms a finished session: the stats counter for the activity
// is incremented once, the completion hook runs, and the back hook is called
// with a nil Resume. It does nothing unless the session is finished.
//
// A store failure is logged and reported as an error event; it does not stop
// the player from closing.
func (p *Player) Complete(ctx context.Context) bool {
	if p.State() != StateFinished {
		return false
	}
	p.closed = true

	if p.store != nil {
		if err := p.store.Increment(ctx, p.sess.Activity()); err != nil {
			p.logger.Error("failed to record completion",
				"activity", p.sess.Activity(),
				"run_id", p.runID,
				"error", err)
			p.emit(&events.ErrorEvent{
				BaseEvent: events.NewPlayerEvent(events.EventError, p.runID),
				Message:   "record completion: " + err.Error(),
			})
		}
	}
	if p.onComplete != nil {
		p.onComplete()
	}
	p.emit(&events.SessionCompleteEvent{
		BaseEvent:      events.NewPlayerEvent(events.EventSessionComplete, p.runID),
		Activity:       string(p.sess.Activity()),
		ContentID:      p.sess.ID(),
		ElapsedSeconds: p.elapsed,
	})
	if p.onBack != nil {
		p.onBack(nil)
	}
	return true
}

// Exit leaves the player without completing. The timer is paused so any tick
// still in flight is stale. The back hook receives a Resume when steps were
// left to play.
func (p *Player) Exit() bool {
	if p.closed {
		return false
	}
	finished := p.State() == StateFinished
	p.engine.Pause()
	p.closed = true

	var resume *Resume
	if !finished {
		resume = &Resume{
			Session:          p.sess,
			Index:            p.index,
			SecondsRemaining: p.engine.Remaining(),
		}
	}
	p.emit(&events.SessionExitEvent{
		BaseEvent: events.NewPlayerEvent(events.EventSessionExit, p.runID),
		Index:     p.index,
		Finished:  finished,
	})
	if p.onBack != nil {
		p.onBack(resume)
	}
	return true
}

func (p *Player) emit(e events.Event) {
	p.emitter.Emit(e)
}

// State returns the playback state.
func (p *Player) State() State {
	switch {
	case p.closed:
		return StateClosed
	case p.index >= p.sess.Len():
		return StateFinished
	default:
		return StateActive
	}
}

// Session returns the session being played.
func (p *Player) Session() *session.Session { return p.sess }

// Index returns the cursor, in [0, Len()]. Len() means finished.
func (p *Player) Index() int { return p.index }

// Finished reports whether every step has been passed.
func (p *Player) Finished() bool { return p.index >= p.sess.Len() }

// Current returns the step under the cursor. ok is false once finished.
func (p *Player) Current() (session.Step, bool) { return p.sess.Step(p.index) }

// Remaining returns the seconds left on the current step.
func (p *Player) Remaining() int { return p.engine.Remaining() }

// Running reports whether the countdown is armed.
func (p *Player) Running() bool { return p.engine.Armed() }

// TimerGen returns the generation a scheduler stamps on the next tick.
func (p *Player) TimerGen() uint64 { return p.engine.Generation() }

// Fraction returns how much of the current step's countdown has elapsed.
func (p *Player) Fraction() float64 { return p.engine.Fraction() }

// Elapsed returns the seconds counted down since the traversal started.
func (p *Player) Elapsed() int { return p.elapsed }

// RunID returns the id shared by every event of this playback.
func (p *Player) RunID() string { return p.runID }

// AutoStart reports whether new timed steps arm themselves.
func (p *Player) AutoStart() bool { return p.autoStart }

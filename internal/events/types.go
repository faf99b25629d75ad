// Package events defines the playback event taxonomy emitted by the session
// player and the plumbing that carries those events to the activity log.
package events

import "time"

// EventType identifies the category and nature of an event.
type EventType string

const (
	// Session lifecycle
	EventSessionStart    EventType = "session.start"
	EventSessionFinished EventType = "session.finished"
	EventSessionRestart  EventType = "session.restart"
	EventSessionComplete EventType = "session.complete"
	EventSessionExit     EventType = "session.exit"

	// Step and timer
	EventStepStart   EventType = "step.start"
	EventStepAdvance EventType = "step.advance"
	EventTimerStart  EventType = "timer.start"
	EventTimerPause  EventType = "timer.pause"

	// Errors
	EventError EventType = "error"
)

// Source constants identify the origin of events.
const (
	SourcePlayer = "player"
	SourceCLI    = "iqfit"
)

// Event is the base interface for all events in the system.
type Event interface {
	Type() EventType
	Timestamp() time.Time
	Source() string
	Run() string
}

// BaseEvent provides the common fields for all events. RunID ties together
// every event of one playback.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      time.Time `json:"timestamp"`
	Src       string    `json:"source"`
	RunID     string    `json:"run_id,omitempty"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType { return e.EventType }

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// Source returns the origin of the event.
func (e BaseEvent) Source() string { return e.Src }

// Run returns the playback run id.
func (e BaseEvent) Run() string { return e.RunID }

// SessionStartEvent is emitted when a player is mounted on a session.
type SessionStartEvent struct {
	BaseEvent
	ContentID string `json:"content_id,omitempty"`
	Title     string `json:"title"`
	Activity  string `json:"activity"`
	Steps     int    `json:"steps"`
	AutoStart bool   `json:"auto_start,omitempty"`
}

// StepStartEvent is emitted whenever the cursor lands on a step.
type StepStartEvent struct {
	BaseEvent
	Index           int    `json:"index"`
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	DurationSeconds int    `json:"duration_seconds"`
}

// StepAdvanceEvent is emitted when the cursor leaves a step, either because
// the user skipped or because the countdown expired.
type StepAdvanceEvent struct {
	BaseEvent
	From             int    `json:"from"`
	Trigger          string `json:"trigger"`
	SecondsRemaining int    `json:"seconds_remaining"`
}

// TimerEvent is emitted when the countdown is armed or disarmed by the user.
type TimerEvent struct {
	BaseEvent
	Index            int `json:"index"`
	SecondsRemaining int `json:"seconds_remaining"`
}

// SessionFinishedEvent is emitted when the cursor moves past the last step.
type SessionFinishedEvent struct {
	BaseEvent
	ElapsedSeconds int `json:"elapsed_seconds"`
}

// SessionRestartEvent is emitted when a finished session is played again.
type SessionRestartEvent struct {
	BaseEvent
}

// SessionCompleteEvent is emitted when the user confirms completion.
type SessionCompleteEvent struct {
	BaseEvent
	Activity       string `json:"activity"`
	ContentID      string `json:"content_id,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// SessionExitEvent is emitted when the player is left before completion.
type SessionExitEvent struct {
	BaseEvent
	Index    int  `json:"index"`
	Finished bool `json:"finished"`
}

// ErrorEvent is emitted for failures around the player, such as a stats
// store that could not be updated.
type ErrorEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// NewEvent creates a BaseEvent with the given type and source.
func NewEvent(eventType EventType, source, runID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Src:       source,
		RunID:     runID,
	}
}

// NewPlayerEvent creates a BaseEvent with the player as the source.
func NewPlayerEvent(eventType EventType, runID string) BaseEvent {
	return NewEvent(eventType, SourcePlayer, runID)
}

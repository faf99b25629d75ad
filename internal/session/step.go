package session

import "strings"

// Kind classifies a step. Workouts use Exercise/Rest, study rituals use
// Study/Break and recipes use Prep/Cook; Note is shared by all three.
type Kind string

const (
	KindExercise Kind = "Exercise"
	KindRest     Kind = "Rest"
	KindNote     Kind = "Note"
	KindPrep     Kind = "Prep"
	KindCook     Kind = "Cook"
	KindStudy    Kind = "Study"
	KindBreak    Kind = "Break"
)

// ParseKind maps a step type label to a Kind. Matching is case-insensitive.
// The second return value is false for labels that name no known kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exercise", "work", "workout":
		return KindExercise, true
	case "rest":
		return KindRest, true
	case "note", "info":
		return KindNote, true
	case "prep", "prepare":
		return KindPrep, true
	case "cook":
		return KindCook, true
	case "study", "focus":
		return KindStudy, true
	case "break":
		return KindBreak, true
	default:
		return "", false
	}
}

// IsRecovery reports whether the kind is a pause between active steps.
func (k Kind) IsRecovery() bool {
	return k == KindRest || k == KindBreak
}

// Step is one unit of a session.
type Step struct {
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
	Kind            Kind   `json:"kind"`
	Instructions    string `json:"instructions,omitempty"`
}

// Timed reports whether the step runs a countdown. Notes and zero-length
// steps are informational and only leave through an explicit skip.
func (s Step) Timed() bool {
	return s.Kind != KindNote && s.DurationSeconds > 0
}

// Countdown returns the number of seconds the timer should hold for the step.
func (s Step) Countdown() int {
	if !s.Timed() {
		return 0
	}
	return s.DurationSeconds
}

// Package session defines the step-sequenced activities played back by the
// session player and normalizes the shapes content arrives in.
package session

import (
	"fmt"
	"strings"
)

// Activity identifies which content browser a session belongs to. Each
// activity maps to one aggregate stats counter.
type Activity string

const (
	ActivityWorkout Activity = "workout"
	ActivityStudy   Activity = "study"
	ActivityRecipe  Activity = "recipe"
)

// Activities lists every known activity in display order.
var Activities = []Activity{ActivityWorkout, ActivityStudy, ActivityRecipe}

// ParseActivity accepts activity names as well as the backend content types
// (WORKOUT, STUDY_TIP, RECIPE) and the plural forms used on the command line.
func ParseActivity(s string) (Activity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "workout", "workouts":
		return ActivityWorkout, nil
	case "study", "study_tip", "study-tip", "studytips", "study_tips", "tips":
		return ActivityStudy, nil
	case "recipe", "recipes", "food":
		return ActivityRecipe, nil
	default:
		return "", fmt.Errorf("unknown activity %q", s)
	}
}

// defaultKind is the kind assigned to steps whose type label is missing or unknown.
func (a Activity) defaultKind() Kind {
	switch a {
	case ActivityStudy:
		return KindStudy
	case ActivityRecipe:
		return KindPrep
	default:
		return KindExercise
	}
}

// recoveryKind is the kind used for generated pauses.
func (a Activity) recoveryKind() Kind {
	switch a {
	case ActivityStudy:
		return KindBreak
	case ActivityRecipe:
		return KindPrep
	default:
		return KindRest
	}
}

// Meta describes the content a session was built from.
type Meta struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title,omitempty"`
	Activity        Activity `json:"activity,omitempty"`
	Description     string   `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes,omitempty"`
}

// Session is an ordered, immutable sequence of steps. Only the playback
// cursor held by the player moves; the steps never change after construction.
type Session struct {
	meta  Meta
	steps []Step
}

// New builds a session from already-normalized steps. An empty step list
// yields the default session for the activity.
func New(meta Meta, steps []Step) *Session {
	if meta.Activity == "" {
		meta.Activity = ActivityWorkout
	}
	if meta.Title == "" {
		meta.Title = "Untitled session"
	}
	if len(steps) == 0 {
		steps = defaultSteps(meta)
	}
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return &Session{meta: meta, steps: cp}
}

// ID returns the content id, empty for ad-hoc sessions.
func (s *Session) ID() string { return s.meta.ID }

// Title returns the display title.
func (s *Session) Title() string { return s.meta.Title }

// Activity returns the activity the session counts toward.
func (s *Session) Activity() Activity { return s.meta.Activity }

// Meta returns the content metadata.
func (s *Session) Meta() Meta { return s.meta }

// Len returns the number of steps.
func (s *Session) Len() int { return len(s.steps) }

// Step returns the step at index i.
func (s *Session) Step(i int) (Step, bool) {
	if i < 0 || i >= len(s.steps) {
		return Step{}, false
	}
	return s.steps[i], true
}

// Steps returns a copy of the step list.
func (s *Session) Steps() []Step {
	cp := make([]Step, len(s.steps))
	copy(cp, s.steps)
	return cp
}

// TotalSeconds sums the countdown of every timed step.
func (s *Session) TotalSeconds() int {
	total := 0
	for _, st := range s.steps {
		total += st.Countdown()
	}
	return total
}

// Default fallback lengths when the content carries no duration of its own.
const (
	defaultPrepareSeconds = 60
	defaultWorkoutSeconds = 10 * 60
	defaultStudySeconds   = 25 * 60
	defaultRecipeSeconds  = 15 * 60
)

// Default returns the minimal two-step session used whenever a content
// source has no usable step list.
func Default(meta Meta) *Session {
	return New(meta, nil)
}

func defaultSteps(meta Meta) []Step {
	seconds := meta.DurationMinutes * 60
	name := "Do the activity"
	kind := meta.Activity.defaultKind()
	switch meta.Activity {
	case ActivityStudy:
		name = "Study"
		if seconds <= 0 {
			seconds = defaultStudySeconds
		}
	case ActivityRecipe:
		name = "Cook"
		kind = KindCook
		if seconds <= 0 {
			seconds = defaultRecipeSeconds
		}
	default:
		if seconds <= 0 {
			seconds = defaultWorkoutSeconds
		}
	}

	instructions := strings.TrimSpace(meta.Description)
	if instructions == "" {
		instructions = "Follow along until the timer runs out."
	}

	return []Step{
		{
			Name:            "Prepare",
			DurationSeconds: defaultPrepareSeconds,
			Kind:            meta.Activity.recoveryKind(),
			Instructions:    "Get your space and materials ready.",
		},
		{
			Name:            name,
			DurationSeconds: seconds,
			Kind:            kind,
			Instructions:    instructions,
		},
	}
}

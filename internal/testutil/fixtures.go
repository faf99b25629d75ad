package testutil

import "github.com/npratt/iqfit/internal/session"

// Sample content records as served by the content API

// SampleWorkoutJSON is a workout record whose steps live in the details column.
var SampleWorkoutJSON = `{
  "id": 11,
  "title": "Quick Warm-up",
  "description": "Short warm-up before the main set",
  "contentType": "WORKOUT",
  "accessLevel": "FREE",
  "durationMinutes": 1,
  "details": "{\"benefits\":[\"mobility\"],\"steps\":[{\"name\":\"Warm-up\",\"time\":5,\"type\":\"Rest\"},{\"name\":\"Push-ups\",\"time\":10,\"type\":\"Exercise\"}]}"
}`

// SampleStudyTipJSON is a study tip whose steps are listed as instructions.
var SampleStudyTipJSON = `{
  "id": "tip-3",
  "title": "Pomodoro Technique",
  "contentType": "STUDY_TIP",
  "instructions": [
    {"name": "Focus", "time": 1500, "type": "Study", "instructions": "Work on a single task."},
    {"name": "Break", "time": 300, "type": "Break", "instructions": "Step away from the desk."}
  ]
}`

// SampleMissingStepsJSON is a record with no usable step list.
var SampleMissingStepsJSON = `{"id": 99, "title": "Mystery", "contentType": "RECIPE"}`

// Sessions used across player and presenter tests

// WarmupPushups returns the two-step session: Warm-up 5s Rest, Push-ups 10s Exercise.
func WarmupPushups() *session.Session {
	return session.FromSource(session.RawSteps{
		Meta: session.Meta{ID: "w-1", Title: "Quick Warm-up", Activity: session.ActivityWorkout},
		Steps: []session.StepRecord{
			{Name: "Warm-up", Time: 5, Type: "Rest", Instructions: "Loosen up."},
			{Name: "Push-ups", Time: 10, Type: "Exercise", Instructions: "Keep your back straight."},
		},
	})
}

// SingleNote returns a session with one untimed Note step.
func SingleNote() *session.Session {
	return session.FromSource(session.RawSteps{
		Meta: session.Meta{ID: "s-1", Title: "Read First", Activity: session.ActivityStudy},
		Steps: []session.StepRecord{
			{Name: "Read the chapter summary", Time: 0, Type: "Note"},
		},
	})
}

// Cookthrough returns a three-step recipe with an untimed first step.
func Cookthrough() *session.Session {
	return session.FromSource(session.RawSteps{
		Meta: session.Meta{ID: "r-1", Title: "Quinoa Bowl", Activity: session.ActivityRecipe},
		Steps: []session.StepRecord{
			{Name: "Gather ingredients", Type: "Note"},
			{Name: "Rinse quinoa", Time: 3, Type: "Prep"},
			{Name: "Simmer", Time: 4, Type: "Cook"},
		},
	})
}

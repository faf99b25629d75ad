package player

import (
	"fmt"

	"github.com/npratt/iqfit/internal/session"
	"github.com/npratt/iqfit/internal/timer"
)

// Presentation configures how one activity's sessions are shown. Every
// activity shares the same player and presenter; only these labels and the
// step renderer differ.
type Presentation struct {
	// Subtitle is shown under the session title.
	Subtitle string
	// FinishedHeading is shown once every step has been passed.
	FinishedHeading string
	// FinishedPrompt explains what confirming completion does.
	FinishedPrompt string
	// CompleteLabel names the completion action.
	CompleteLabel string
	// RenderStep produces the one-line summary of a step used in the roadmap.
	RenderStep func(session.Step) string
}

// PresentationFor returns the presentation for an activity. Unknown
// activities use the workout presentation.
func PresentationFor(a session.Activity) Presentation {
	switch a {
	case session.ActivityStudy:
		return Presentation{
			Subtitle:        "Focus Session",
			FinishedHeading: "Session Complete!",
			FinishedPrompt:  "Log your successful study session to the dashboard.",
			CompleteLabel:   "Log & Finish Session",
			RenderStep:      renderStep,
		}
	case session.ActivityRecipe:
		return Presentation{
			Subtitle:        "Interactive Cookthrough",
			FinishedHeading: "Recipe Finished!",
			FinishedPrompt:  "Log your successful recipe cookthrough.",
			CompleteLabel:   "Log & Finish Meal",
			RenderStep:      renderRecipeStep,
		}
	default:
		return Presentation{
			Subtitle:        "Guided Workout",
			FinishedHeading: "Workout Complete!",
			FinishedPrompt:  "Log your workout to the dashboard.",
			CompleteLabel:   "Log & Finish Workout",
			RenderStep:      renderStep,
		}
	}
}

func renderStep(st session.Step) string {
	if !st.Timed() {
		return fmt.Sprintf("%s (%s)", st.Name, st.Kind)
	}
	return fmt.Sprintf("%s (%s, %s)", st.Name, st.Kind, timer.FormatClock(st.Countdown()))
}

// renderRecipeStep leads with the duration, the way recipe cards list stages.
func renderRecipeStep(st session.Step) string {
	if !st.Timed() {
		return fmt.Sprintf("%s: %s", st.Kind, st.Name)
	}
	return fmt.Sprintf("%s: %s, %d min", st.Kind, st.Name, (st.Countdown()+59)/60)
}

// Package stats holds the aggregate activity counters and favorites that the
// session player updates on completion.
package stats

import (
	"context"
	"fmt"

	"github.com/npratt/iqfit/internal/session"
)

// Counters are the lifetime completion counts shown on the dashboard.
type Counters struct {
	Workouts      int `toml:"workouts" json:"workouts"`
	StudySessions int `toml:"study_sessions" json:"studySessions"`
	RecipesTried  int `toml:"recipes_tried" json:"recipesTried"`
}

// For returns the counter that tracks the given activity.
func (c Counters) For(a session.Activity) int {
	switch a {
	case session.ActivityWorkout:
		return c.Workouts
	case session.ActivityStudy:
		return c.StudySessions
	case session.ActivityRecipe:
		return c.RecipesTried
	default:
		return 0
	}
}

// Total sums every counter.
func (c Counters) Total() int {
	return c.Workouts + c.StudySessions + c.RecipesTried
}

// increment bumps the counter for a and reports an error for activities
// that have no counter.
func (c *Counters) increment(a session.Activity) error {
	switch a {
	case session.ActivityWorkout:
		c.Workouts++
	case session.ActivityStudy:
		c.StudySessions++
	case session.ActivityRecipe:
		c.RecipesTried++
	default:
		return fmt.Errorf("no counter for activity %q", a)
	}
	return nil
}

// Store reads and increments aggregate counters. The player only ever calls
// Increment, once per confirmed completion.
type Store interface {
	Get(ctx context.Context) (Counters, error)
	Increment(ctx context.Context, activity session.Activity) error
}

// Favorites tracks which content items the user starred, per activity.
type Favorites interface {
	Favorites(ctx context.Context, activity session.Activity) ([]string, error)
	ToggleFavorite(ctx context.Context, activity session.Activity, id string) (bool, error)
}

// Profile is both a Store and a Favorites.
type Profile interface {
	Store
	Favorites
}

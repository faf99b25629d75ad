package content

import (
	"encoding/json"
	"strings"

	"github.com/npratt/iqfit/internal/session"
)

// Access levels of a content record.
const (
	AccessFree    = "FREE"
	AccessPremium = "PREMIUM"
)

// Record is one content item in the shape the content API serves it.
type Record struct {
	ID              string               `json:"id" yaml:"id"`
	Title           string               `json:"title" yaml:"title"`
	Description     string               `json:"description" yaml:"description"`
	ContentType     string               `json:"contentType" yaml:"contentType"`
	Category        string               `json:"category" yaml:"category"`
	DifficultyLevel string               `json:"difficultyLevel" yaml:"difficultyLevel"`
	AccessLevel     string               `json:"accessLevel" yaml:"accessLevel"`
	DurationMinutes int                  `json:"durationMinutes" yaml:"durationMinutes"`
	Sets            int                  `json:"sets" yaml:"sets"`
	Reps            string               `json:"reps" yaml:"reps"`
	RestTimeSeconds int                  `json:"restTimeSeconds" yaml:"restTimeSeconds"`
	Details         string               `json:"details" yaml:"details"`
	Instructions    []session.StepRecord `json:"instructions" yaml:"instructions"`
	Steps           []session.StepRecord `json:"steps" yaml:"steps"`
}

// UnmarshalJSON decodes a record leniently. Ids and reps may be numbers,
// details may be an inline object, and step lists that fail to decode are
// dropped so the record still plays the default session.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		ID           json.RawMessage `json:"id"`
		Reps         json.RawMessage `json:"reps"`
		Details      json.RawMessage `json:"details"`
		Instructions json.RawMessage `json:"instructions"`
		Steps        json.RawMessage `json:"steps"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	r.ID = scalar(aux.ID)
	r.Reps = scalar(aux.Reps)
	r.Details = details(aux.Details)
	r.Instructions = stepList(aux.Instructions)
	r.Steps = stepList(aux.Steps)
	return nil
}

func scalar(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func details(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	return scalar(raw)
}

func stepList(raw json.RawMessage) []session.StepRecord {
	if len(raw) == 0 {
		return nil
	}
	var steps []session.StepRecord
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil
	}
	return steps
}

// Activity maps the content type to an activity. Unknown types count as
// workouts.
func (r Record) Activity() session.Activity {
	a, err := session.ParseActivity(r.ContentType)
	if err != nil {
		return session.ActivityWorkout
	}
	return a
}

// Premium reports whether the record requires a premium profile.
func (r Record) Premium() bool {
	return strings.EqualFold(strings.TrimSpace(r.AccessLevel), AccessPremium)
}

// Meta returns the session metadata for the record.
func (r Record) Meta() session.Meta {
	return session.Meta{
		ID:              r.ID,
		Title:           r.Title,
		Activity:        r.Activity(),
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
	}
}

// Source returns the record as a session source.
func (r Record) Source() session.Source {
	return session.ContentRecord{
		Meta:            r.Meta(),
		Details:         r.Details,
		Instructions:    r.Instructions,
		Steps:           r.Steps,
		Sets:            r.Sets,
		Reps:            r.Reps,
		RestTimeSeconds: r.RestTimeSeconds,
	}
}

// matches reports whether every word of query appears in the title,
// description or category.
func (r Record) matches(query string) bool {
	haystack := strings.ToLower(r.Title + " " + r.Description + " " + r.Category)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}

package session

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seconds is a step length as it appears in content records. Records in the
// wild carry it as an integer, a float or a numeric string.
type Seconds int

// UnmarshalJSON accepts numbers and numeric strings.
func (s *Seconds) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = 0
		return nil
	}
	raw = strings.Trim(raw, `"`)
	v, err := parseSeconds(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalYAML accepts scalar numbers and numeric strings.
func (s *Seconds) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("step time: expected scalar, got node kind %d", node.Kind)
	}
	v, err := parseSeconds(node.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func parseSeconds(raw string) (Seconds, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("step time %q is not a number", raw)
	}
	return Seconds(f), nil
}

// StepRecord is the wire shape of a step: {name, time, type, instructions}.
type StepRecord struct {
	Name         string  `json:"name" yaml:"name"`
	Time         Seconds `json:"time" yaml:"time"`
	Type         string  `json:"type" yaml:"type"`
	Instructions string  `json:"instructions" yaml:"instructions"`
}

// Source is where a session's steps come from. It is either RawSteps or a
// ContentRecord; FromSource normalizes both into a Session.
type Source interface {
	source()
}

// RawSteps is a bare step list, as the built-in recipe data provides.
type RawSteps struct {
	Meta  Meta
	Steps []StepRecord
}

func (RawSteps) source() {}

// ContentRecord is a backend content record whose steps may be nested in the
// details blob, listed as study-tip instructions, or implied by sets and rest.
type ContentRecord struct {
	Meta            Meta
	Details         string
	Instructions    []StepRecord
	Steps           []StepRecord
	Sets            int
	Reps            string
	RestTimeSeconds int
}

func (ContentRecord) source() {}

// detailsBlob is the JSON stored in the content record's details column.
type detailsBlob struct {
	Benefits []string     `json:"benefits"`
	Steps    []StepRecord `json:"steps"`
}

// FromSource normalizes a source into a session. It never fails: sources
// with missing or malformed step lists yield the default session.
func FromSource(src Source) *Session {
	switch s := src.(type) {
	case RawSteps:
		return New(s.Meta, Normalize(s.Meta.Activity, s.Steps))
	case *RawSteps:
		if s == nil {
			return Default(Meta{})
		}
		return FromSource(*s)
	case ContentRecord:
		return New(s.Meta, s.steps())
	case *ContentRecord:
		if s == nil {
			return Default(Meta{})
		}
		return FromSource(*s)
	default:
		return Default(Meta{})
	}
}

// steps picks the first usable step list in priority order: the details
// blob, the inline steps, the study-tip instructions, then sets and rest.
func (c ContentRecord) steps() []Step {
	if details := strings.TrimSpace(c.Details); details != "" {
		var blob detailsBlob
		if err := json.Unmarshal([]byte(details), &blob); err == nil {
			if steps := Normalize(c.Meta.Activity, blob.Steps); len(steps) > 0 {
				return steps
			}
		}
	}
	if steps := Normalize(c.Meta.Activity, c.Steps); len(steps) > 0 {
		return steps
	}
	if steps := Normalize(c.Meta.Activity, c.Instructions); len(steps) > 0 {
		return steps
	}
	return c.setSteps()
}

// setSteps expands a sets/reps/rest workout into alternating untimed
// exercise steps and timed rests. There is no rest after the final set.
func (c ContentRecord) setSteps() []Step {
	if c.Sets <= 0 {
		return nil
	}
	title := c.Meta.Title
	if title == "" {
		title = "the exercise"
	}
	instructions := "Complete the set at your own pace, then skip ahead."
	if reps := strings.TrimSpace(c.Reps); reps != "" {
		instructions = fmt.Sprintf("Complete %s reps of %s, then skip ahead.", reps, title)
	}

	steps := make([]Step, 0, c.Sets*2)
	for k := 1; k <= c.Sets; k++ {
		steps = append(steps, Step{
			Name:         fmt.Sprintf("Set %d of %d", k, c.Sets),
			Kind:         KindExercise,
			Instructions: instructions,
		})
		if k < c.Sets && c.RestTimeSeconds > 0 {
			steps = append(steps, Step{
				Name:            "Rest",
				DurationSeconds: c.RestTimeSeconds,
				Kind:            KindRest,
				Instructions:    "Breathe and recover before the next set.",
			})
		}
	}
	return steps
}

// Normalize converts wire step records into steps. Negative times clamp to
// zero, blank names are numbered and unknown types take the activity's
// default kind (or Note when the step is untimed).
func Normalize(activity Activity, records []StepRecord) []Step {
	if len(records) == 0 {
		return nil
	}
	steps := make([]Step, 0, len(records))
	for i, r := range records {
		seconds := int(r.Time)
		if seconds < 0 {
			seconds = 0
		}
		name := strings.TrimSpace(r.Name)
		if name == "" {
			name = fmt.Sprintf("Step %d", i+1)
		}
		kind, ok := ParseKind(r.Type)
		if !ok {
			kind = activity.defaultKind()
			if seconds == 0 && strings.TrimSpace(r.Type) == "" {
				kind = KindNote
			}
		}
		steps = append(steps, Step{
			Name:            name,
			DurationSeconds: seconds,
			Kind:            kind,
			Instructions:    strings.TrimSpace(r.Instructions),
		})
	}
	return steps
}

// ParseContentJSON decodes a single content record as served by the content
// API. Fields that fail to decode are ignored, and a record that cannot be
// decoded at all still yields the default session.
func ParseContentJSON(data []byte, fallback Meta) *Session {
	var rec struct {
		ID              json.RawMessage `json:"id"`
		Title           string          `json:"title"`
		Description     string          `json:"description"`
		ContentType     string          `json:"contentType"`
		DurationMinutes int             `json:"durationMinutes"`
		Sets            int             `json:"sets"`
		Reps            json.RawMessage `json:"reps"`
		RestTimeSeconds int             `json:"restTimeSeconds"`
		Details         json.RawMessage `json:"details"`
		Instructions    json.RawMessage `json:"instructions"`
		Steps           json.RawMessage `json:"steps"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Default(fallback)
	}

	meta := fallback
	if id := rawScalar(rec.ID); id != "" {
		meta.ID = id
	}
	if rec.Title != "" {
		meta.Title = rec.Title
	}
	if rec.Description != "" {
		meta.Description = rec.Description
	}
	if rec.DurationMinutes > 0 {
		meta.DurationMinutes = rec.DurationMinutes
	}
	if a, err := ParseActivity(rec.ContentType); err == nil {
		meta.Activity = a
	}

	return FromSource(ContentRecord{
		Meta:            meta,
		Details:         rawDetails(rec.Details),
		Instructions:    rawSteps(rec.Instructions),
		Steps:           rawSteps(rec.Steps),
		Sets:            rec.Sets,
		Reps:            rawScalar(rec.Reps),
		RestTimeSeconds: rec.RestTimeSeconds,
	})
}

// rawScalar renders a JSON string or number as plain text.
func rawScalar(raw json.RawMessage) string {
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

// rawDetails accepts the details blob either as an embedded JSON string (the
// database column) or as an inline object.
func rawDetails(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	return rawScalar(raw)
}

// rawSteps decodes a step list, returning nil when it is absent or malformed.
func rawSteps(raw json.RawMessage) []StepRecord {
	if len(raw) == 0 {
		return nil
	}
	var steps []StepRecord
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil
	}
	return steps
}

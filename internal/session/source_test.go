package session

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFromSource_RawSteps(t *testing.T) {
	src := RawSteps{
		Meta: Meta{ID: "w1", Title: "Quick", Activity: ActivityWorkout},
		Steps: []StepRecord{
			{Name: "Warm-up", Time: 5, Type: "Rest"},
			{Name: "Push-ups", Time: 10, Type: "Exercise"},
		},
	}

	s := FromSource(src)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	first, _ := s.Step(0)
	if first.Name != "Warm-up" || first.DurationSeconds != 5 || first.Kind != KindRest {
		t.Errorf("step 0 = %+v", first)
	}
	second, _ := s.Step(1)
	if second.Kind != KindExercise || second.DurationSeconds != 10 {
		t.Errorf("step 1 = %+v", second)
	}
	if s.TotalSeconds() != 15 {
		t.Errorf("TotalSeconds() = %d, want 15", s.TotalSeconds())
	}
}

func TestFromSource_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"nil source", nil},
		{"nil raw pointer", (*RawSteps)(nil)},
		{"nil record pointer", (*ContentRecord)(nil)},
		{"empty raw steps", RawSteps{Meta: Meta{Activity: ActivityWorkout}}},
		{"malformed details", ContentRecord{Meta: Meta{Activity: ActivityStudy}, Details: "{not json"}},
		{"details without steps", ContentRecord{Meta: Meta{Activity: ActivityRecipe}, Details: `{"benefits":["x"]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromSource(tt.src)
			if s == nil {
				t.Fatal("FromSource returned nil")
			}
			if s.Len() != 2 {
				t.Fatalf("Len() = %d, want default 2-step session", s.Len())
			}
			first, _ := s.Step(0)
			if first.Name != "Prepare" {
				t.Errorf("first step = %q, want Prepare", first.Name)
			}
		})
	}
}

func TestFromSource_ContentRecordPriority(t *testing.T) {
	rec := ContentRecord{
		Meta:         Meta{Title: "Pomodoro", Activity: ActivityStudy},
		Details:      `{"benefits":["focus"],"steps":[{"name":"Focus","time":1500,"type":"Study"},{"name":"Break","time":300,"type":"Break"}]}`,
		Instructions: []StepRecord{{Name: "ignored", Time: 1}},
	}

	s := FromSource(rec)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	first, _ := s.Step(0)
	if first.Name != "Focus" || first.Kind != KindStudy {
		t.Errorf("details steps should win, got %+v", first)
	}

	rec.Details = ""
	s = FromSource(rec)
	first, _ = s.Step(0)
	if first.Name != "ignored" {
		t.Errorf("instructions should be used without details, got %+v", first)
	}
}

func TestFromSource_SetsExpansion(t *testing.T) {
	rec := ContentRecord{
		Meta:            Meta{Title: "Squats", Activity: ActivityWorkout},
		Sets:            3,
		Reps:            "8-10",
		RestTimeSeconds: 20,
	}

	s := FromSource(rec)
	// set, rest, set, rest, set
	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}
	wantKinds := []Kind{KindExercise, KindRest, KindExercise, KindRest, KindExercise}
	for i, want := range wantKinds {
		st, _ := s.Step(i)
		if st.Kind != want {
			t.Errorf("step %d kind = %s, want %s", i, st.Kind, want)
		}
	}
	set, _ := s.Step(0)
	if set.Timed() {
		t.Error("set steps should be untimed")
	}
	rest, _ := s.Step(1)
	if rest.Countdown() != 20 {
		t.Errorf("rest countdown = %d, want 20", rest.Countdown())
	}
}

func TestNormalize(t *testing.T) {
	steps := Normalize(ActivityRecipe, []StepRecord{
		{Name: "  ", Time: -5, Type: "Cook"},
		{Name: "Serve", Time: 0},
		{Name: "Mystery", Time: 30, Type: "juggle"},
	})

	if steps[0].Name != "Step 1" {
		t.Errorf("blank name = %q, want Step 1", steps[0].Name)
	}
	if steps[0].DurationSeconds != 0 {
		t.Errorf("negative time = %d, want 0", steps[0].DurationSeconds)
	}
	if steps[1].Kind != KindNote {
		t.Errorf("untyped zero step kind = %s, want Note", steps[1].Kind)
	}
	if steps[2].Kind != KindPrep {
		t.Errorf("unknown type kind = %s, want recipe default Prep", steps[2].Kind)
	}
}

func TestStep_NoteNeverCountsDown(t *testing.T) {
	st := Step{Name: "Read", DurationSeconds: 30, Kind: KindNote}
	if st.Timed() {
		t.Error("note step should not be timed")
	}
	if st.Countdown() != 0 {
		t.Errorf("Countdown() = %d, want 0", st.Countdown())
	}
}

func TestSeconds_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    Seconds
		wantErr bool
	}{
		{`30`, 30, false},
		{`30.9`, 30, false},
		{`"45"`, 45, false},
		{`null`, 0, false},
		{`"soon"`, 0, true},
	}
	for _, tt := range tests {
		var s Seconds
		err := json.Unmarshal([]byte(tt.in), &s)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unmarshal(%s) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if s != tt.want {
			t.Errorf("Unmarshal(%s) = %d, want %d", tt.in, s, tt.want)
		}
	}

	var rec StepRecord
	if err := yaml.Unmarshal([]byte("name: Plank\ntime: \"60\"\ntype: Exercise\n"), &rec); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if rec.Time != 60 {
		t.Errorf("yaml time = %d, want 60", rec.Time)
	}
}

func TestParseContentJSON(t *testing.T) {
	t.Run("details string column", func(t *testing.T) {
		data := `{"id": 7, "title": "Morning HIIT", "contentType": "WORKOUT",
			"details": "{\"steps\":[{\"name\":\"Jacks\",\"time\":30,\"type\":\"Exercise\"}]}"}`
		s := ParseContentJSON([]byte(data), Meta{})
		if s.ID() != "7" {
			t.Errorf("ID() = %q, want 7", s.ID())
		}
		if s.Activity() != ActivityWorkout {
			t.Errorf("Activity() = %q, want workout", s.Activity())
		}
		if s.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", s.Len())
		}
	})

	t.Run("inline details object", func(t *testing.T) {
		data := `{"title": "Pomodoro", "contentType": "STUDY_TIP",
			"details": {"steps":[{"name":"Focus","time":"1500","type":"Study"}]}}`
		s := ParseContentJSON([]byte(data), Meta{})
		st, _ := s.Step(0)
		if st.DurationSeconds != 1500 {
			t.Errorf("duration = %d, want 1500", st.DurationSeconds)
		}
	})

	t.Run("steps undefined", func(t *testing.T) {
		s := ParseContentJSON([]byte(`{"title":"Empty","contentType":"RECIPE"}`), Meta{})
		if s.Len() != 2 {
			t.Errorf("Len() = %d, want default 2", s.Len())
		}
		if s.Title() != "Empty" {
			t.Errorf("Title() = %q, want Empty", s.Title())
		}
	})

	t.Run("malformed step list", func(t *testing.T) {
		s := ParseContentJSON([]byte(`{"title":"Bad","instructions":"read a lot"}`), Meta{Activity: ActivityStudy})
		if s.Len() != 2 {
			t.Errorf("Len() = %d, want default 2", s.Len())
		}
	})

	t.Run("not json", func(t *testing.T) {
		s := ParseContentJSON([]byte(`<html>`), Meta{Title: "Fallback", Activity: ActivityRecipe})
		if s.Title() != "Fallback" || s.Len() != 2 {
			t.Errorf("got %q with %d steps", s.Title(), s.Len())
		}
	})
}

func TestParseActivity(t *testing.T) {
	tests := map[string]Activity{
		"WORKOUT":   ActivityWorkout,
		"workouts":  ActivityWorkout,
		"STUDY_TIP": ActivityStudy,
		"recipes":   ActivityRecipe,
	}
	for in, want := range tests {
		got, err := ParseActivity(in)
		if err != nil || got != want {
			t.Errorf("ParseActivity(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseActivity("yoga"); err == nil {
		t.Error("expected error for unknown activity")
	}
}

func TestSession_Immutable(t *testing.T) {
	steps := []Step{{Name: "A", DurationSeconds: 5, Kind: KindRest}}
	s := New(Meta{Title: "T"}, steps)
	steps[0].Name = "changed"

	got := s.Steps()
	got[0].Name = "also changed"

	st, _ := s.Step(0)
	if st.Name != "A" {
		t.Errorf("session step mutated to %q", st.Name)
	}
}

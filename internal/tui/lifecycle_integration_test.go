package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/npratt/iqfit/internal/player"
	"github.com/npratt/iqfit/internal/stats"
	"github.com/npratt/iqfit/internal/testutil"
)

// TestTUILifecycleSmoke runs a full session headlessly: skip through every
// step, confirm completion and verify the counter and the back navigation.
func TestTUILifecycleSmoke(t *testing.T) {
	store := stats.NewMemoryStore()
	var backCalled bool

	p := player.New(testutil.WarmupPushups(),
		player.WithAutoStart(true),
		player.WithStatsStore(store),
		player.WithOnBack(func(*player.Resume) { backCalled = true }),
	)
	m := newModel(context.Background(), p, player.PresentationFor(p.Session().Activity()), 10*time.Millisecond)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Quick Warm-up"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Workout Complete!"))
	}, teatest.WithDuration(2*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	if fm == nil {
		t.Fatal("FinalModel returned nil")
	}
	if !fm.(model).done {
		t.Error("model should be done after completion")
	}
	if !backCalled {
		t.Error("back callback was not invoked")
	}

	counters, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if counters.Workouts != 1 {
		t.Errorf("Workouts = %d, want 1", counters.Workouts)
	}
}

// TestTUILifecycleExit leaves mid-session and checks the resume point.
func TestTUILifecycleExit(t *testing.T) {
	var resume *player.Resume
	p := player.New(testutil.SingleNote(),
		player.WithOnBack(func(r *player.Resume) { resume = r }),
	)
	m := newModel(context.Background(), p, player.Presentation{}, time.Second)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	out := tm.FinalOutput(t, teatest.WithFinalTimeout(5*time.Second))
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(out)

	if !strings.Contains(buf.String(), "Focus Session") {
		t.Error("output should show the study subtitle")
	}
	if resume == nil || resume.Index != 0 {
		t.Errorf("resume = %+v, want index 0", resume)
	}
	if p.State() != player.StateClosed {
		t.Errorf("State() = %s, want closed", p.State())
	}
}

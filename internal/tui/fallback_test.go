package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/npratt/iqfit/internal/events"
	"github.com/npratt/iqfit/internal/player"
	"github.com/npratt/iqfit/internal/stats"
	"github.com/npratt/iqfit/internal/testutil"
)

func TestTerminalSize_ReturnsInts(t *testing.T) {
	// May return 0,0 if not a terminal
	width, height := terminalSize()
	if width < 0 || height < 0 {
		t.Errorf("terminalSize returned negative values: %d, %d", width, height)
	}
}

func TestRunSimple_CompletesFromCommands(t *testing.T) {
	router := events.NewRouter(events.DefaultBufferSize)
	defer router.Close()
	eventChan := router.Subscribe()

	store := stats.NewMemoryStore()
	p := player.New(testutil.WarmupPushups(),
		player.WithAutoStart(false),
		player.WithStatsStore(store),
		player.WithEmitter(router),
	)

	var out bytes.Buffer
	in := strings.NewReader("\nn\nn\nc\n")
	ui := New(p, WithEvents(eventChan), WithIO(in, &out), WithTickInterval(time.Hour))

	if err := ui.runSimple(context.Background()); err != nil {
		t.Fatalf("runSimple: %v", err)
	}

	counters, _ := store.Get(context.Background())
	if counters.Workouts != 1 {
		t.Errorf("Workouts = %d, want 1", counters.Workouts)
	}

	output := out.String()
	for _, want := range []string{
		"Quick Warm-up",
		"[1/2] Warm-up (Rest, 00:05) 00:05 paused",
		"skipped step 1",
		"all steps done",
		"workout complete",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunSimple_EndOfInputExits(t *testing.T) {
	var resume *player.Resume
	p := player.New(testutil.WarmupPushups(),
		player.WithAutoStart(false),
		player.WithOnBack(func(r *player.Resume) { resume = r }),
	)

	var out bytes.Buffer
	ui := New(p, WithIO(strings.NewReader("n\n"), &out), WithTickInterval(time.Hour))

	done := make(chan error, 1)
	go func() { done <- ui.runSimple(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runSimple returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("runSimple did not exit at end of input")
	}

	if resume == nil || resume.Index != 1 {
		t.Errorf("resume = %+v, want index 1", resume)
	}
}

func TestRunSimple_TicksCountDown(t *testing.T) {
	p := player.New(testutil.WarmupPushups(), player.WithAutoStart(true))

	// The pipe never delivers a line, so only ticks and the context move
	// the loop.
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	ui := New(p, WithIO(pr, &out), WithTickInterval(5*time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- ui.runSimple(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runSimple did not exit on cancel")
	}

	if p.Index() == 0 && p.Remaining() == 5 {
		t.Error("ticks should have counted the warm-up down")
	}
	if p.State() != player.StateClosed {
		t.Errorf("State() = %s, want closed", p.State())
	}
}

func TestRunSimple_UnknownCommand(t *testing.T) {
	p := player.New(testutil.SingleNote())

	var out bytes.Buffer
	ui := New(p, WithIO(strings.NewReader("dance\nc\nq\n"), &out), WithTickInterval(time.Hour))
	if err := ui.runSimple(context.Background()); err != nil {
		t.Fatalf("runSimple: %v", err)
	}

	if !strings.Contains(out.String(), `unknown command "dance"`) {
		t.Errorf("output missing unknown command notice:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "finish every step before completing") {
		t.Errorf("complete mid-session should be refused:\n%s", out.String())
	}
}

func TestRunSimple_ReturnsWhileInputStaysOpen(t *testing.T) {
	p := player.New(testutil.WarmupPushups(), player.WithAutoStart(false))
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	go func() { _, _ = io.WriteString(pw, "q\n") }()

	var out bytes.Buffer
	ui := New(p, WithIO(pr, &out), WithTickInterval(time.Hour))
	done := make(chan error, 1)
	go func() { done <- ui.runSimple(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runSimple: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("runSimple should return once the player exits, even with input open")
	}
	if p.State() != player.StateClosed {
		t.Errorf("State() = %s, want closed", p.State())
	}
}

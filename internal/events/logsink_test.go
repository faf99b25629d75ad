package events

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func startSink(t *testing.T, path string) (*LogSink, chan Event, context.CancelFunc) {
	t.Helper()
	sink := NewLogSink(path)
	ch := make(chan Event, 10)
	ctx, cancel := context.WithCancel(context.Background())
	if err := sink.Start(ctx, ch); err != nil {
		cancel()
		t.Fatalf("Start failed: %v", err)
	}
	return sink, ch, cancel
}

func TestLogSinkCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "nested", "activity.log")

	sink, _, cancel := startSink(t, path)
	cancel()
	_ = sink.Stop()

	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}

func TestLogSinkWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	sink, ch, cancel := startSink(t, path)

	ch <- &SessionStartEvent{
		BaseEvent: NewPlayerEvent(EventSessionStart, "run-1"),
		Title:     "Cardio Blast",
		Activity:  "workout",
		Steps:     4,
	}
	ch <- &SessionCompleteEvent{
		BaseEvent:      NewPlayerEvent(EventSessionComplete, "run-1"),
		Activity:       "workout",
		ElapsedSeconds: 90,
	}

	// Cancelling drains what is already buffered.
	cancel()
	_ = sink.Stop()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	for _, want := range []string{`"type":"session.start"`, `"type":"session.complete"`, `"run_id":"run-1"`} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %s", want)
		}
	}

	for i, line := range strings.Split(strings.TrimSpace(content), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestLogSinkAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	initial := `{"type":"session.start","timestamp":"2024-01-01T00:00:00Z","source":"player"}` + "\n"
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatal(err)
	}

	sink, ch, cancel := startSink(t, path)
	ch <- &SessionExitEvent{BaseEvent: NewPlayerEvent(EventSessionExit, "run-2"), Index: 1}
	time.Sleep(50 * time.Millisecond)
	cancel()
	_ = sink.Stop()

	lines, err := Tail(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], `"type":"session.exit"`) {
		t.Errorf("last line = %s", lines[1])
	}
}

func TestLogSinkRotatesLargeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activity.log")
	if err := os.WriteFile(path, []byte(strings.Repeat("x", 64)), 0644); err != nil {
		t.Fatal(err)
	}

	sink := NewLogSink(path)
	sink.SetMaxBytes(32)
	ch := make(chan Event)
	if err := sink.Start(context.Background(), ch); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	close(ch)
	_ = sink.Stop()

	matches, _ := filepath.Glob(path + ".*.bak")
	if len(matches) != 1 {
		t.Errorf("expected one backup, got %v", matches)
	}
}

func TestLogSinkHandlesClosedChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	sink := NewLogSink(path)
	ch := make(chan Event, 1)
	if err := sink.Start(context.Background(), ch); err != nil {
		t.Fatal(err)
	}
	close(ch)

	done := make(chan struct{})
	go func() {
		_ = sink.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Stop timed out after channel close")
	}
}

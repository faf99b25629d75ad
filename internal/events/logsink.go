package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink consumes events from the router.
type Sink interface {
	Start(ctx context.Context, events <-chan Event) error
	Stop() error
}

// DefaultMaxLogBytes is the size at which the activity log is moved aside
// when the sink starts.
const DefaultMaxLogBytes = 10 * 1024 * 1024

// LogSink appends events to the activity log as JSON lines. The log is a
// running history across playbacks; it is only rotated once it grows past
// maxBytes.
type LogSink struct {
	path     string
	maxBytes int64
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	done     chan struct{}
}

// NewLogSink creates a new LogSink that writes to the specified path.
func NewLogSink(path string) *LogSink {
	return &LogSink{
		path:     path,
		maxBytes: DefaultMaxLogBytes,
		done:     make(chan struct{}),
	}
}

// SetMaxBytes changes the rotation threshold. Zero or less disables rotation.
func (s *LogSink) SetMaxBytes(n int64) {
	s.maxBytes = n
}

// Start opens the log file and processes events until the context is
// cancelled or the channel is closed.
func (s *LogSink) Start(ctx context.Context, events <-chan Event) error {
	if err := s.openFile(); err != nil {
		return err
	}

	go s.run(ctx, events)
	return nil
}

func (s *LogSink) openFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if err := s.rotateIfLarge(); err != nil {
		return err
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	s.mu.Lock()
	s.file = file
	s.encoder = json.NewEncoder(file)
	s.mu.Unlock()

	return nil
}

// rotateIfLarge renames an oversized log with a timestamp suffix so the
// next playback starts a fresh file.
func (s *LogSink) rotateIfLarge() error {
	if s.maxBytes <= 0 {
		return nil
	}
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < s.maxBytes {
		return nil
	}

	bakPath := fmt.Sprintf("%s.%s.bak", s.path, time.Now().Format("2006-01-02T15-04-05"))
	if err := os.Rename(s.path, bakPath); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

func (s *LogSink) run(ctx context.Context, events <-chan Event) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.drain(events)
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.write(event)
		}
	}
}

// drain writes whatever is already buffered so the final events of a
// playback (complete, exit) are not lost on shutdown.
func (s *LogSink) drain(events <-chan Event) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			s.write(event)
		default:
			return
		}
	}
}

func (s *LogSink) write(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoder == nil {
		return
	}
	if err := s.encoder.Encode(event); err != nil {
		fmt.Fprintf(os.Stderr, "log sink: failed to write event: %v\n", err)
	}
}

// Stop waits for the sink to finish and closes the log file.
func (s *LogSink) Stop() error {
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		s.encoder = nil
		return err
	}
	return nil
}

// Path returns the log file path.
func (s *LogSink) Path() string {
	return s.path
}

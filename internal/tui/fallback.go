package tui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/npratt/iqfit/internal/events"
	"github.com/npratt/iqfit/internal/player"
	"github.com/npratt/iqfit/internal/timer"
	"golang.org/x/term"
)

// isTerminal returns true if both stdout and stdin are TTYs.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalSize returns the current terminal width and height.
// Returns 0, 0 if the terminal size cannot be determined.
func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// terminalTooSmall returns true if the terminal is below the minimum size.
func terminalTooSmall() bool {
	width, height := terminalSize()
	return width < minWidth || height < minHeight
}

const lineModeHelp = "commands: [enter] start/pause  n skip  r restart  c complete  s status  q back"

// runSimple drives the player from line commands on the input and prints
// events and status lines to the output. It returns once the player is
// completed or exited, the input ends, or ctx is cancelled.
func (t *TUI) runSimple(ctx context.Context) error {
	lines := make(chan string)
	// The reader stays parked in Scan when the player closes before the
	// input ends; it exits with the process.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(t.tickInterval)
	ticker.Stop()
	defer ticker.Stop()
	var armedGen uint64

	// sync restarts the ticker for a newly armed generation so a resumed
	// countdown gets a full second before its next tick.
	sync := func() {
		if !t.player.Running() {
			ticker.Stop()
			return
		}
		if gen := t.player.TimerGen(); gen != armedGen {
			armedGen = gen
			ticker.Reset(t.tickInterval)
		}
	}

	t.printf("%s\n", t.player.Session().Title())
	t.printf("%s\n", lineModeHelp)
	t.printStatus()
	sync()

	for {
		t.drainEvents()
		if t.player.State() == player.StateClosed {
			return nil
		}

		select {
		case <-ctx.Done():
			t.player.Exit()
			t.drainEvents()
			return nil

		case <-ticker.C:
			t.player.Tick(armedGen)
			sync()

		case line, ok := <-lines:
			if !ok {
				t.player.Exit()
				continue
			}
			t.command(ctx, line)
			sync()

		case event, ok := <-t.eventChan:
			if !ok {
				t.eventChan = nil
				continue
			}
			t.printEvent(event)
		}
	}
}

// command applies one line-mode command to the player.
func (t *TUI) command(ctx context.Context, line string) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "p", "pause", "start", "toggle", "space":
		t.player.Toggle()
	case "n", "next", "skip":
		t.player.Skip()
	case "r", "restart":
		t.player.Restart()
	case "c", "complete", "done":
		if !t.player.Complete(ctx) {
			t.printf("finish every step before completing\n")
		}
	case "q", "quit", "exit", "back", "b":
		t.player.Exit()
	case "s", "status":
		t.printStatus()
	case "?", "h", "help":
		t.printf("%s\n", lineModeHelp)
	default:
		t.printf("unknown command %q\n%s\n", line, lineModeHelp)
	}
}

// drainEvents prints every event already waiting on the channel.
func (t *TUI) drainEvents() {
	if t.eventChan == nil {
		return
	}
	for {
		select {
		case event, ok := <-t.eventChan:
			if !ok {
				t.eventChan = nil
				return
			}
			t.printEvent(event)
		default:
			return
		}
	}
}

func (t *TUI) printEvent(event events.Event) {
	text := events.Format(event)
	if text == "" {
		return
	}
	t.printf("%s %s\n", event.Timestamp().Format("15:04:05"), text)
}

// printStatus prints the current step and countdown.
func (t *TUI) printStatus() {
	p := t.player
	if p.Finished() {
		t.printf("%s %s (%s)\n", t.presentation.FinishedHeading, t.presentation.FinishedPrompt,
			timer.FormatClock(p.Elapsed()))
		t.printf("c: %s  r: restart\n", t.presentation.CompleteLabel)
		return
	}
	st, _ := p.Current()
	state := "paused"
	if p.Running() {
		state = "running"
	}
	if !st.Timed() {
		state = "untimed"
	}
	t.printf("[%d/%d] %s %s %s\n", p.Index()+1, p.Session().Len(),
		t.presentation.RenderStep(st), timer.FormatClock(p.Remaining()), state)
}

func (t *TUI) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

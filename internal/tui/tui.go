// Package tui presents a session player in the terminal using bubbletea, with
// a line-mode fallback for pipes and small terminals.
package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/iqfit/internal/events"
	"github.com/npratt/iqfit/internal/player"
)

// DefaultTickInterval is the wall-clock length of one countdown second.
const DefaultTickInterval = time.Second

// TUI drives a player from the keyboard and renders it.
type TUI struct {
	player       *player.Player
	presentation player.Presentation
	tickInterval time.Duration
	eventChan    <-chan events.Event
	in           io.Reader
	out          io.Writer
	forceSimple  bool
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a TUI for p. The presentation defaults to the one for the
// session's activity.
func New(p *player.Player, opts ...Option) *TUI {
	t := &TUI{
		player:       p,
		presentation: player.PresentationFor(p.Session().Activity()),
		tickInterval: DefaultTickInterval,
		in:           os.Stdin,
		out:          os.Stdout,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithPresentation overrides the activity presentation.
func WithPresentation(pres player.Presentation) Option {
	return func(t *TUI) {
		t.presentation = pres
	}
}

// WithTickInterval sets how often a countdown second elapses.
func WithTickInterval(d time.Duration) Option {
	return func(t *TUI) {
		if d > 0 {
			t.tickInterval = d
		}
	}
}

// WithEvents sets the event stream printed in line mode.
func WithEvents(ch <-chan events.Event) Option {
	return func(t *TUI) {
		t.eventChan = ch
	}
}

// WithIO sets the input and output used in line mode.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(t *TUI) {
		t.in = in
		t.out = out
	}
}

// WithLineMode forces line mode even on a capable terminal.
func WithLineMode(enabled bool) Option {
	return func(t *TUI) {
		t.forceSimple = enabled
	}
}

// Run presents the player until the session is completed or exited, or ctx
// is cancelled. The player is always closed when Run returns, so no timer
// outlives the presenter.
func (t *TUI) Run(ctx context.Context) error {
	defer t.player.Exit()

	if t.forceSimple || !isTerminal() || terminalTooSmall() {
		return t.runSimple(ctx)
	}

	m := newModel(ctx, t.player, t.presentation, t.tickInterval)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

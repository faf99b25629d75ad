package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/iqfit/internal/player"
)

// model is the bubbletea model for the session player.
type model struct {
	ctx          context.Context
	player       *player.Player
	presentation player.Presentation
	tickInterval time.Duration

	keys     keyMap
	help     help.Model
	progress progress.Model

	// Layout
	width  int
	height int

	// done is set once the player has been completed or exited.
	done bool
}

// newModel creates a model presenting p.
func newModel(ctx context.Context, p *player.Player, pres player.Presentation, interval time.Duration) model {
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if pres.RenderStep == nil {
		pres = player.PresentationFor(p.Session().Activity())
	}

	return model{
		ctx:          ctx,
		player:       p,
		presentation: pres,
		tickInterval: interval,
		keys:         defaultKeyMap(),
		help:         help.New(),
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model. It schedules the first tick when the player
// auto-started its first step.
func (m model) Init() tea.Cmd {
	if m.player.Running() {
		return m.doTick(m.player.TimerGen())
	}
	return nil
}

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/npratt/iqfit/internal/timer"
)

// tickMsg is one countdown second, stamped with the timer generation that
// scheduled it.
type tickMsg struct {
	gen uint64
}

// doTick schedules a tick for generation gen.
func (m model) doTick(gen uint64) tea.Cmd {
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(60, msg.Width-8))
		return m, nil

	case tickMsg:
		return m, m.handleTick(msg)
	}

	return m, nil
}

// handleTick forwards a tick to the player. Each armed generation owns one
// tick chain: a counted tick reschedules itself, and an expiry that armed
// the next step starts a chain for the new generation. Stale ticks end
// their chain.
func (m model) handleTick(msg tickMsg) tea.Cmd {
	if m.done {
		return nil
	}
	if m.player.Tick(msg.gen) == timer.TickStale {
		return nil
	}
	if m.player.Running() {
		return m.doTick(m.player.TimerGen())
	}
	return nil
}

// handleKey processes keyboard input.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}

	gen := m.player.TimerGen()
	keys := m.keys.activeKeys(m.player.Finished())

	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Back):
		m.player.Exit()
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Complete):
		if m.player.Complete(m.ctx) {
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.Restart):
		m.player.Restart()

	case key.Matches(msg, keys.Skip):
		m.player.Skip()

	case key.Matches(msg, keys.Toggle):
		m.player.Toggle()
	}

	return m, m.rearm(gen)
}

// rearm starts a tick chain when a transition armed a new generation.
func (m model) rearm(prevGen uint64) tea.Cmd {
	if m.player.Running() && m.player.TimerGen() != prevGen {
		return m.doTick(m.player.TimerGen())
	}
	return nil
}

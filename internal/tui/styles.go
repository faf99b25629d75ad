package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Counter  lipgloss.Style

	// Current step styles
	StepName     lipgloss.Style
	Instructions lipgloss.Style
	Clock        lipgloss.Style
	ClockPaused  lipgloss.Style
	Untimed      lipgloss.Style

	// Kind badges
	KindWork     lipgloss.Style
	KindRecovery lipgloss.Style
	KindNote     lipgloss.Style

	// Roadmap markers
	StepDone    lipgloss.Style
	StepCurrent lipgloss.Style
	StepPending lipgloss.Style

	// Finished panel
	Finished       lipgloss.Style
	FinishedPrompt lipgloss.Style

	// Footer style
	Footer lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Counter: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	StepName: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252")),

	Instructions: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	Clock: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	ClockPaused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")),

	Untimed: lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("245")),

	KindWork: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("39")).
		Padding(0, 1),

	KindRecovery: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("114")).
		Padding(0, 1),

	KindNote: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("245")).
		Padding(0, 1),

	StepDone: lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")),

	StepCurrent: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	StepPending: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Finished: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82")),

	FinishedPrompt: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
}

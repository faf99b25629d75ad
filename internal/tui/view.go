package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/npratt/iqfit/internal/session"
	"github.com/npratt/iqfit/internal/timer"
)

const (
	minWidth  = 60
	minHeight = 15

	// roadmapContext is how many completed steps stay visible above the
	// current one when the roadmap scrolls.
	roadmapContext = 2
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	var body string
	if m.player.Finished() {
		body = m.renderFinished()
	} else {
		body = m.renderStep()
	}

	sections := []string{
		m.renderHeader(),
		m.renderDivider(),
		body,
		m.renderDivider(),
	}
	used := lipgloss.Height(strings.Join(sections, "\n")) + 3
	sections = append(sections,
		m.renderRoadmap(m.height-used-lipgloss.Height(m.renderFooter())),
		m.renderFooter(),
	)

	content := strings.Join(sections, "\n")
	return styles.Container.Width(safeWidth(m.width - 2)).Render(content)
}

// renderTooSmall renders a minimal message for terminals that are too small.
func (m model) renderTooSmall() string {
	return fmt.Sprintf("Terminal too small (%dx%d). Need %dx%d minimum.",
		m.width, m.height, minWidth, minHeight)
}

// renderHeader renders the title, the activity subtitle and the step counter.
func (m model) renderHeader() string {
	w := safeWidth(m.width - 4)
	sess := m.player.Session()

	title := styles.Title.Render(truncate(sess.Title(), w/2))
	counter := styles.Counter.Render(m.stepCounter())
	titleLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(1, w-lipgloss.Width(title)-lipgloss.Width(counter))),
		counter,
	)

	return titleLine + "\n" + styles.Subtitle.Render(m.presentation.Subtitle)
}

func (m model) stepCounter() string {
	n := m.player.Session().Len()
	if m.player.Finished() {
		return fmt.Sprintf("%d/%d done", n, n)
	}
	return fmt.Sprintf("step %d/%d", m.player.Index()+1, n)
}

// renderStep renders the current step with its countdown.
func (m model) renderStep() string {
	st, ok := m.player.Current()
	if !ok {
		return ""
	}
	w := safeWidth(m.width - 4)

	lines := []string{
		kindBadge(st.Kind) + " " + styles.StepName.Render(st.Name),
	}
	if st.Instructions != "" {
		lines = append(lines, styles.Instructions.Width(w).Render(st.Instructions))
	}
	lines = append(lines, "")

	if !st.Timed() {
		lines = append(lines, styles.Untimed.Render("Untimed step. Skip ahead when you're ready."))
		return strings.Join(lines, "\n")
	}

	clock := timer.FormatClock(m.player.Remaining())
	if m.player.Running() {
		lines = append(lines, styles.Clock.Render(clock))
	} else {
		lines = append(lines, styles.ClockPaused.Render(clock+"  paused"))
	}
	lines = append(lines, m.progress.ViewAs(m.player.Fraction()))

	return strings.Join(lines, "\n")
}

// renderFinished renders the completion panel.
func (m model) renderFinished() string {
	pres := m.presentation
	lines := []string{
		styles.Finished.Render(pres.FinishedHeading),
		styles.FinishedPrompt.Render(pres.FinishedPrompt),
		"",
		styles.Counter.Render(fmt.Sprintf("Total time: %s", timer.FormatClock(m.player.Elapsed()))),
		"",
		styles.StepCurrent.Render("enter: " + pres.CompleteLabel),
	}
	return strings.Join(lines, "\n")
}

// renderRoadmap renders every step with a done, current or pending marker,
// scrolled so the current step stays visible within height lines.
func (m model) renderRoadmap(height int) string {
	steps := m.player.Session().Steps()
	height = max(1, height)

	start := 0
	if len(steps) > height {
		start = min(max(0, m.player.Index()-roadmapContext), len(steps)-height)
	}
	end := min(len(steps), start+height)

	w := safeWidth(m.width - 8)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		text := truncate(m.presentation.RenderStep(steps[i]), w)
		switch {
		case i < m.player.Index():
			lines = append(lines, styles.StepDone.Render("✓ "+text))
		case i == m.player.Index():
			lines = append(lines, styles.StepCurrent.Render("▶ "+text))
		default:
			lines = append(lines, styles.StepPending.Render("○ "+text))
		}
	}
	return strings.Join(lines, "\n")
}

// renderDivider renders a horizontal divider line.
func (m model) renderDivider() string {
	w := safeWidth(m.width - 4)
	return styles.Divider.Render(strings.Repeat("─", w))
}

// renderFooter renders the key help for the current state.
func (m model) renderFooter() string {
	keys := m.keys.activeKeys(m.player.Finished())
	return styles.Footer.Render(m.help.View(keys))
}

// kindBadge renders a step kind label colored by its role.
func kindBadge(k session.Kind) string {
	label := strings.ToUpper(string(k))
	switch {
	case k.IsRecovery():
		return styles.KindRecovery.Render(label)
	case k == session.KindNote:
		return styles.KindNote.Render(label)
	default:
		return styles.KindWork.Render(label)
	}
}

// truncate shortens s to at most w cells.
func truncate(s string, w int) string {
	if w <= 3 || lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// safeWidth returns a width that is at least 1 to prevent negative values.
func safeWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

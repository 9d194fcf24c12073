package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/gitpeek/internal/pager"
)

// renderMain renders the full pager screen.
func (m Model) renderMain() string {
	l := m.layout
	var sections []string

	if l.Context > 0 {
		sections = append(sections, m.renderContext(l))
	}
	sections = append(sections, m.renderLines(l))
	if l.Search > 0 {
		sections = append(sections, m.renderSearchBox(l))
	}
	if l.Footer > 0 {
		sections = append(sections, m.renderFooter(l))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().Margin(FrameMargin).Render(body)
}

// renderContext renders the enclosing commit block above a double rule.
func (m Model) renderContext(l layout) string {
	rows := make([]string, 0, l.Context-1)
	for _, line := range m.frame.Context {
		if len(rows) == l.Context-1 {
			break
		}
		rows = append(rows, fit(expandTabs(line), l.Width))
	}
	rows = padRows(rows, l.Context-1)
	return m.styles.Context.Width(l.Width).Render(strings.Join(rows, "\n"))
}

// renderLines renders the visible window with search matches highlighted.
func (m Model) renderLines(l layout) string {
	hl := pager.NewHighlighter(m.frame.Highlight)
	rows := make([]string, 0, l.Main)
	for _, line := range m.frame.Lines {
		if len(rows) == l.Main {
			break
		}
		rows = append(rows, fit(m.renderLine(hl, line), l.Width))
	}
	return strings.Join(padRows(rows, l.Main), "\n")
}

func (m Model) renderLine(hl pager.Highlighter, line string) string {
	if m.frame.Highlight != "" {
		segments := hl.Segments(line)
		if len(segments) > 1 || (len(segments) == 1 && segments[0].Highlight) {
			var b strings.Builder
			for _, seg := range segments {
				style := m.styles.Text
				if seg.Highlight {
					style = m.styles.Match
				}
				b.WriteString(style.Render(expandTabs(seg.Text)))
			}
			return b.String()
		}
	}
	if m.diff != nil {
		return m.diff.Render(expandTabs(line))
	}
	return m.styles.Text.Render(expandTabs(line))
}

// renderSearchBox renders the query in a bordered box titled "Search".
func (m Model) renderSearchBox(l layout) string {
	border := m.styles.Border
	if _, editing := m.frame.Mode.(pager.Editing); editing {
		border = m.styles.BorderFocus
	}
	return renderBox("Search", m.search.View(), l.Width, border, m.styles.AccentText)
}

// renderBox draws a single-line box with title set into the top border.
func renderBox(title, content string, width int, border, titleStyle lipgloss.Style) string {
	if width < 4 {
		return fit(content, width)
	}
	inner := width - 2
	label := " " + title + " "
	if ansi.StringWidth(label) > inner-1 {
		label = ""
	}
	top := border.Render("┌─") + titleStyle.Render(label) +
		border.Render(strings.Repeat("─", max(0, inner-1-ansi.StringWidth(label)))+"┐")

	body := fit(content, inner)
	if pad := inner - ansi.StringWidth(body); pad > 0 {
		body += strings.Repeat(" ", pad)
	}
	middle := border.Render("│") + body + border.Render("│")
	bottom := border.Render("└" + strings.Repeat("─", inner) + "┘")
	return top + "\n" + middle + "\n" + bottom
}

// renderFooter renders the status line: position, stream state and key
// help for the current mode.
func (m Model) renderFooter(l layout) string {
	styles := m.styles.WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render(positionLabel(m.frame, l.Main), styles.Text)}
	if m.frame.Final {
		parts = append(parts, bg.Render("end", styles.FaintText))
	} else {
		parts = append(parts, bg.Render("streaming…", styles.InfoText))
	}
	if m.frame.Context != nil {
		parts = append(parts, bg.Render(fmt.Sprintf("commit @%d", m.frame.ContextStart+1), styles.AccentText))
	}
	if active, ok := m.frame.Mode.(pager.Active); ok {
		parts = append(parts, bg.Render("/"+active.Term, styles.WarningText))
	}
	left := bg.Join(parts, " • ")

	h := m.help
	h.Width = max(0, l.Width-ansi.StringWidth(left)-1)
	right := h.ShortHelpView(m.keys.modeHelp(m.frame.Mode))
	gap := l.Width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return bg.FillLine(left, l.Width)
	}
	return bg.FillLine(left+bg.Render(strings.Repeat(" ", gap), styles.Text)+right, l.Width)
}

// positionLabel describes which lines are on screen, 1-based.
func positionLabel(f pager.Frame, rows int) string {
	if f.Total == 0 {
		return "no lines"
	}
	last := f.First + min(len(f.Lines), rows)
	if last <= f.First {
		return fmt.Sprintf("line %d of %d", f.First+1, f.Total)
	}
	return fmt.Sprintf("lines %d-%d of %d", f.First+1, last, f.Total)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minListWidth = 24
	helpText     = "↑/↓ recipe • tab command • enter/ctrl+y copy • ctrl+l listener • ctrl+o relay • ctrl+r reset • esc clear/quit"
)

func (m model) View() string {
	header := m.styles.Title.Render("pipesheet")
	if f := m.sess.Search.Fragment(); f != "" {
		header += m.styles.Muted.Render("  #" + f)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Panel.Width(m.listWidth()).Render(m.listView()),
		m.styles.Panel.Render(m.viewport.View()),
	)

	return strings.Join([]string{
		header,
		m.input.View(),
		body,
		m.statusView(),
		m.styles.Muted.Render(helpText),
	}, "\n")
}

func (m model) listWidth() int {
	width := minListWidth
	for _, r := range m.catalog {
		width = max(width, lipgloss.Width(r.Title())+4)
	}
	return width
}

func (m model) listView() string {
	if len(m.results) == 0 {
		return m.styles.Warn.Render(fmt.Sprintf("no recipe matches %q", m.sess.Search.Keyword()))
	}
	lines := make([]string, len(m.results))
	for i, r := range m.results {
		if i == m.cursor {
			lines[i] = m.styles.Selected.Render("> " + r.Entry.Title())
			continue
		}
		lines[i] = "  " + r.Entry.Title()
	}
	return strings.Join(lines, "\n")
}

// commandsView renders every command of the selected recipe, the active one highlighted
func (m model) commandsView() string {
	r, ok := m.selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(r.Title()))
	b.WriteString("\n")
	for i, c := range r.Render() {
		b.WriteString("\n")
		label := m.styles.Label.Render("[" + c.Label + "]")
		if i == m.command {
			label = m.styles.Active.Render("[" + c.Label + "] *")
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(c.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) statusView() string {
	switch {
	case m.copied:
		return m.styles.Success.Render("Copied")
	case m.status != "":
		return m.styles.Muted.Render(m.status)
	default:
		return ""
	}
}

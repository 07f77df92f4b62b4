package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// copyResultMsg reports a finished clipboard write
type copyResultMsg struct{ err error }

// hideCopiedMsg ends one "Copied" display. Earlier pending ones are not
// cancelled by a newer copy: the first to fire hides the indicator.
type hideCopiedMsg struct{}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.copied = false
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		}
		return m, nil

	case hideCopiedMsg:
		m.copied = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.input.Value() == "" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.setKeyword("")
			return m, nil
		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		case "tab":
			m.cycleCommand(1)
			return m, nil
		case "shift+tab":
			m.cycleCommand(-1)
			return m, nil
		case "ctrl+y", "enter":
			return m, m.copySelected()
		case "ctrl+l":
			m.sess.Listener.Set(m.sess.Listener.Get().Next())
			m.status = "listener: " + string(m.sess.Listener.Get())
			m.renderSelection()
			return m, nil
		case "ctrl+o":
			m.status = "relay: " + m.sess.NextRelayURL()
			m.renderSelection()
			return m, nil
		case "ctrl+r":
			if r, ok := m.selected(); ok {
				m.catalog.Reset(r.ID())
				m.status = "reset " + r.ID()
				m.renderSelection()
			}
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.setKeyword(m.input.Value())
	}
	return m, cmd
}

// setKeyword mirrors the search box into the session and re-filters
func (m *model) setKeyword(keyword string) {
	m.sess.Search.SetKeyword(keyword)
	m.status = ""
	m.command = 0
	m.refresh()
}

func (m *model) cycleCommand(delta int) {
	r, ok := m.selected()
	if !ok {
		return
	}
	n := len(r.Render())
	if n == 0 {
		return
	}
	m.command = (m.command + delta + n) % n
	m.renderSelection()
}

// copySelected shows "Copied" at once and writes the clipboard in the background
func (m *model) copySelected() tea.Cmd {
	c, ok := m.selectedCommand()
	if !ok {
		return nil
	}
	m.copied = true
	m.status = ""
	write := m.copy
	text := c.Text
	return tea.Batch(
		func() tea.Msg { return copyResultMsg{err: write(text)} },
		tea.Tick(m.copyDelay, func(time.Time) tea.Msg { return hideCopiedMsg{} }),
	)
}

func (m *model) relayout() {
	listWidth := m.listWidth()
	m.viewport.Width = max(20, m.width-listWidth-4)
	// header, search box, status and help lines
	m.viewport.Height = max(3, m.height-6)
	m.renderSelection()
}

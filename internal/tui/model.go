// Package tui is the full-screen browser of a command sheet: a search box,
// the ranked recipe list and the commands of the selected recipe.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"pipesheet-cli/internal/recipe"
	"pipesheet-cli/internal/search"
	"pipesheet-cli/internal/session"
)

// DefaultCopyDelay is how long "Copied" stays visible after a copy
const DefaultCopyDelay = 1500 * time.Millisecond

// Options configures a browse session
type Options struct {
	CopyDelay time.Duration
	// Copy writes to the clipboard; clipboard.WriteAll when nil
	Copy func(string) error
}

type model struct {
	sess    *session.Session
	catalog recipe.Catalog

	input    textinput.Model
	viewport viewport.Model
	results  []search.Result[recipe.Recipe]
	cursor   int
	command  int

	copy      func(string) error
	copyDelay time.Duration
	copied    bool
	status    string

	width  int
	height int
	styles styles
}

func newModel(sess *session.Session, catalog recipe.Catalog, opts Options) model {
	input := textinput.New()
	input.Prompt = "search> "
	input.Placeholder = "folder, tunnel, gzip..."
	input.CharLimit = 256
	input.SetValue(sess.Search.Keyword())
	input.Focus()

	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.CopyDelay <= 0 {
		opts.CopyDelay = DefaultCopyDelay
	}

	m := model{
		sess:      sess,
		catalog:   catalog,
		input:     input,
		viewport:  viewport.New(60, 12),
		copy:      opts.Copy,
		copyDelay: opts.CopyDelay,
		styles:    newStyles(),
	}
	m.refresh()
	return m
}

// refresh re-ranks the catalog for the current keyword and re-renders the selection
func (m *model) refresh() {
	m.results = search.Rank(m.catalog, m.sess.Search.Keyword())
	if m.cursor >= len(m.results) {
		m.cursor = max(0, len(m.results)-1)
	}
	m.renderSelection()
}

func (m *model) selected() (recipe.Recipe, bool) {
	if len(m.results) == 0 {
		return nil, false
	}
	return m.results[m.cursor].Entry, true
}

// selectedCommand returns the highlighted command of the selected recipe
func (m *model) selectedCommand() (recipe.Command, bool) {
	r, ok := m.selected()
	if !ok {
		return recipe.Command{}, false
	}
	commands := r.Render()
	if len(commands) == 0 {
		return recipe.Command{}, false
	}
	if m.command >= len(commands) {
		m.command = 0
	}
	return commands[m.command], true
}

func (m *model) moveCursor(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.results)) % len(m.results)
	m.command = 0
	m.viewport.GotoTop()
	m.renderSelection()
}

func (m *model) renderSelection() {
	m.viewport.SetContent(m.commandsView())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

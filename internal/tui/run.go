package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"pipesheet-cli/internal/recipe"
	"pipesheet-cli/internal/session"
)

// Run browses catalog until the user quits
func Run(sess *session.Session, catalog recipe.Catalog, opts Options) error {
	p := tea.NewProgram(newModel(sess, catalog, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

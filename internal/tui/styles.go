package tui

import "github.com/charmbracelet/lipgloss"

var (
	violet  = lipgloss.Color("#8B5CF6")
	slate   = lipgloss.Color("#64748B")
	amber   = lipgloss.Color("#F59E0B")
	emerald = lipgloss.Color("#10B981")
)

type styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Active   lipgloss.Style
	Warn     lipgloss.Style
	Success  lipgloss.Style
	Panel    lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Foreground(violet).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(slate),
		Selected: lipgloss.NewStyle().Foreground(violet).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(slate).Bold(true),
		Active:   lipgloss.NewStyle().Foreground(emerald).Bold(true),
		Warn:     lipgloss.NewStyle().Foreground(amber).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(emerald).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(slate).
			Padding(0, 1),
	}
}

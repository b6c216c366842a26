package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// statusLine renders the outcome of the last action above a view.
func statusLine(status string, err error) string {
	switch {
	case err != nil:
		return errorStyle.Render("Error: "+err.Error()) + "\n"
	case status != "":
		return successStyle.Render(status) + "\n"
	}

	return ""
}

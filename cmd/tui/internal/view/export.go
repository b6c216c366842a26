package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spend/internal/export"
)

type exportState int

const (
	exportStatePath exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	form    *huh.Form
	spinner spinner.Model
	path    *string

	written string
	count   int
	err     error
}

func NewExportModel(exportSvc *export.Service, defaultDir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	path := defaultDir

	m := ExportModel{
		exportService: exportSvc,
		spinner:       s,
		path:          &path,
	}
	m.form = m.buildPathForm()

	return m
}

func (m ExportModel) Title() string { return "Export CSV" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStatePath:
		return m.updatePath(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.exportCmd(strings.TrimSpace(*m.path)))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.written = result.path
		m.count = result.count
		m.err = result.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildPathForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("directory is required")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(m.spinner.View() + " Writing expenses...")
	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(statusLine("", m.err))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				successStyle.Bold(true).Render("Export Complete!"),
				"",
				fmt.Sprintf("%d expenses written to", m.count),
				accentStyle.Render(m.written),
			),
		)
	}

	return ""
}

type exportResultMsg struct {
	path  string
	count int
	err   error
}

func (m ExportModel) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		path, n, err := m.exportService.Export(dir)
		return exportResultMsg{path: path, count: n, err: err}
	}
}

package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spend/internal/importer"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/matching"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateSourceSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

var sourceLabels = map[importer.Source]string{
	importer.SourceSpend: "Spend CSV (name, amount, category)",
	importer.SourceCGD:   "Caixa Geral de Depósitos export",
}

type ImportModel struct {
	CommonModel
	ledgerService *ledger.Service
	importService *importer.Service
	matchService  *matching.Service

	state          importState
	filePicker     filepicker.Model
	selectedSource importer.Source
	sourceCursor   int

	status string
	err    error
}

func NewImportModel(ledgerSvc *ledger.Service, impSvc *importer.Service, matchSvc *matching.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		ledgerService: ledgerSvc,
		importService: impSvc,
		matchService:  matchSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string { return "Esc: back | Enter: select" }

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateSourceSelect {
			return m.updateSourceSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("Imported %d expenses.", msg.count)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateSourceSelect
		return m, nil
	case importStateResult:
		m.state = importStateSourceSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateSourceSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
	case tea.KeyDown:
		if m.sourceCursor < len(importer.Sources)-1 {
			m.sourceCursor++
		}
	case tea.KeyEnter:
		m.selectedSource = importer.Sources[m.sourceCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateSourceSelect:
		return m.viewSourceSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedSource, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return lipgloss.NewStyle().Padding(2).Render(statusLine(m.status, m.err) + "\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewSourceSelect() string {
	s := "Select file format:\n\n"

	for i, source := range importer.Sources {
		cursor := " "
		if i == m.sourceCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, sourceLabels[source])
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

// Messages

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	source := m.selectedSource

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		items, err := m.importService.Import(source, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		created, err := m.ledgerService.ImportExpenses(ctx, m.matchService.Apply(items))
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(created)}
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spend/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spend/internal/config"
	"github.com/MrJamesThe3rd/spend/internal/export"
	"github.com/MrJamesThe3rd/spend/internal/importer"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/ledger/store"
	"github.com/MrJamesThe3rd/spend/internal/logging"
	"github.com/MrJamesThe3rd/spend/internal/matching"
)

type model struct {
	appName       string
	ledgerService *ledger.Service
	importService *importer.Service
	matchService  *matching.Service
	exportService *export.Service
	exportDir     string

	currentView View
	size        tea.WindowSizeMsg

	expensesView view.ExpensesModel
	logView      view.LogModel
	importView   view.ImportModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewExpenses View = 1
	ViewLog      View = 2
	ViewImport   View = 3
	ViewExport   View = 4
)

func newModel(appName, exportDir string, ledgerSvc *ledger.Service) model {
	return model{
		appName:       appName,
		ledgerService: ledgerSvc,
		importService: importer.NewService(),
		matchService:  matching.NewService(ledgerSvc),
		exportService: export.NewService(ledgerSvc),
		exportDir:     exportDir,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// open resets a screen and replays the last window size so it lays out correctly.
func (m model) open(v View, screen tea.Model) (model, tea.Cmd) {
	m.currentView = v
	m.setScreen(screen)

	var cmd tea.Cmd
	if m.size.Width > 0 {
		screen, cmd = screen.Update(m.size)
		m.setScreen(screen)
	}

	return m, tea.Batch(cmd, screen.Init())
}

func (m *model) setScreen(screen tea.Model) {
	switch s := screen.(type) {
	case view.ExpensesModel:
		m.expensesView = s
	case view.LogModel:
		m.logView = s
	case view.ImportModel:
		m.importView = s
	case view.ExportModel:
		m.exportView = s
	}
}

func (m model) screen() view.View {
	switch m.currentView {
	case ViewExpenses:
		return m.expensesView
	case ViewLog:
		return m.logView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewExpenses, view.NewExpensesModel(m.ledgerService))
			case "2":
				return m.open(ViewLog, view.NewLogModel(m.ledgerService))
			case "3":
				return m.open(ViewImport, view.NewImportModel(m.ledgerService, m.importService, m.matchService))
			case "4":
				return m.open(ViewExport, view.NewExportModel(m.exportService, m.exportDir))
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	current := m.screen()
	if current == nil {
		return m, nil
	}

	next, cmd := current.Update(msg)
	m.setScreen(next)

	return m, cmd
}

func (m model) View() string {
	current := m.screen()
	if current == nil {
		summary := m.ledgerService.Summary()

		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s\n\n", m.appName) +
				fmt.Sprintf("%d expenses, %s total\n\n", summary.Count, view.FormatAmount(summary.Total)) +
				"1. Expenses\n" +
				"2. Transaction Log\n" +
				"3. Import CSV\n" +
				"4. Export CSV\n\n" +
				"q. Quit",
		)
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, current.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := tea.LogToFile(cfg.Log.File, cfg.App.Name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := logging.New(logFile, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up logging:", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)

	backend, err := store.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		fmt.Fprintln(os.Stderr, "failed to open storage:", err)
		os.Exit(1)
	}
	defer backend.Close()

	ledgerSvc := ledger.NewService(backend)
	if err := ledgerSvc.Load(context.Background()); err != nil {
		slog.Error("failed to load ledger", "error", err)
		fmt.Fprintln(os.Stderr, "failed to load ledger:", err)
		os.Exit(1)
	}

	view.Currency = cfg.App.CurrencySymbol

	p := tea.NewProgram(newModel(cfg.App.Name, cfg.Export.Dir, ledgerSvc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

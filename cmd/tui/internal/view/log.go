package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/transaction"
)

// txItem wraps a log entry to implement list.Item.
type txItem struct {
	tx transaction.Transaction
}

func (i txItem) Title() string {
	kind := faintStyle.Render(fmt.Sprintf("[%s]", i.tx.Kind.Label()))
	return fmt.Sprintf("%s  %s  %s", FormatChange(i.tx.Change), kind, i.tx.ExpenseName)
}

func (i txItem) Description() string {
	return fmt.Sprintf("%s  %s → %s",
		FormatTime(i.tx.Timestamp), FormatAmount(i.tx.PreviousAmount), FormatAmount(i.tx.NewAmount))
}

func (i txItem) FilterValue() string {
	return i.tx.ExpenseName
}

type LogModel struct {
	CommonModel
	svc *ledger.Service

	list        list.Model
	form        *huh.Form
	formConfirm *bool

	status string
	err    error
}

func NewLogModel(svc *ledger.Service) LogModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Transaction Log"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.SetStatusBarItemName("entry", "entries")

	return LogModel{
		svc:  svc,
		list: l,
	}
}

func (m LogModel) Title() string { return "Transaction Log" }

func (m LogModel) ShortHelp() string {
	if m.form != nil {
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | x: delete entry | C: clear log | /: filter | r: refresh"
}

func (m LogModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logLoadedMsg:
		items := make([]list.Item, len(msg.txs))
		for i, tx := range msg.txs {
			items[i] = txItem{tx: tx}
		}

		return m, m.list.SetItems(items)

	case logChangedMsg:
		m.status, m.err = msg.status, msg.err
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)

		return m, nil
	}

	if m.form != nil {
		return m.updateConfirm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}

			return m, Back
		case "r":
			return m, m.loadCmd()
		case "x":
			item, ok := m.list.SelectedItem().(txItem)
			if !ok {
				return m, nil
			}

			return m, m.deleteCmd(item.tx)
		case "C":
			if len(m.list.Items()) == 0 {
				return m, nil
			}

			return m.openClearConfirm()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m LogModel) openClearConfirm() (tea.Model, tea.Cmd) {
	m.formConfirm = new(false)
	m.status, m.err = "", nil

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Clear all %d log entries?", len(m.list.Items()))).
				Description("Expenses are kept.").
				Affirmative("Clear").
				Negative("Cancel").
				Value(m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m LogModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.form = nil
		return m, nil
	case huh.StateCompleted:
		m.form = nil

		if !*m.formConfirm {
			return m, nil
		}

		return m, m.clearCmd()
	}

	return m, cmd
}

func (m LogModel) View() string {
	content := m.list.View()

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine(m.status, m.err) + content)
}

// Messages

type logLoadedMsg struct {
	txs []transaction.Transaction
}

type logChangedMsg struct {
	status string
	err    error
}

func (m LogModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return logLoadedMsg{txs: m.svc.Transactions()}
	}
}

func (m LogModel) deleteCmd(tx transaction.Transaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.DeleteTransaction(ctx, tx.ID); err != nil {
			return logChangedMsg{err: err}
		}

		return logChangedMsg{status: fmt.Sprintf("Removed %s entry for %q.", tx.Kind.Label(), tx.ExpenseName)}
	}
}

func (m LogModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.ClearTransactions(ctx); err != nil {
			return logChangedMsg{err: err}
		}

		return logChangedMsg{status: "Transaction log cleared."}
	}
}

package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateAdd
	expensesStateAmount
	expensesStateCategory
	expensesStateDelete
)

type ExpensesModel struct {
	CommonModel
	svc *ledger.Service

	state   expensesState
	table   table.Model
	summary ledger.Summary
	// rows parallels the table rows; category header rows hold nil.
	rows []*expense.Expense

	form   *huh.Form
	target expense.Expense
	sign   money.Amount

	// Form bindings live on the heap so copies of the model share them.
	formName     *string
	formAmount   *string
	formCategory *expense.Category
	formConfirm  *bool

	status string
	err    error
}

func NewExpensesModel(svc *ledger.Service) ExpensesModel {
	columns := []table.Column{
		{Title: "Name", Width: 32},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Added", Width: 17},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ExpensesModel{
		svc:   svc,
		table: t,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.state != expensesStateBrowse {
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | a: add | +/-: change amount | c: category | d: delete | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesLoadedMsg:
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case expenseSavedMsg:
		m.status, m.err = msg.status, msg.err
		m.closeForm()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	if m.state == expensesStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "a":
			return m.openAdd()
		case "+", "=":
			return m.openAmount(1)
		case "-":
			return m.openAmount(-1)
		case "c":
			return m.openCategory()
		case "d":
			return m.openDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) selected() (expense.Expense, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) || m.rows[idx] == nil {
		return expense.Expense{}, false
	}

	return *m.rows[idx], true
}

func (m ExpensesModel) openAdd() (tea.Model, tea.Cmd) {
	m.formName = new(string)
	m.formAmount = new(string)
	m.formCategory = new(expense.CategoryOther)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(m.formAmount).
				Validate(validateAmount),

			categorySelect(m.formCategory),
		),
	).WithWidth(45).WithShowHelp(false)

	return m.openForm(expensesStateAdd)
}

func (m ExpensesModel) openAmount(sign money.Amount) (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	verb := "add to"
	if sign < 0 {
		verb = "subtract from"
	}

	m.target = e
	m.sign = sign
	m.formAmount = new(string)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Amount to %s %q", verb, e.Name)).
				Description("Current: " + FormatAmount(e.Amount)).
				Placeholder("0.00").
				Value(m.formAmount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	return m.openForm(expensesStateAmount)
}

func (m ExpensesModel) openCategory() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.target = e
	m.formCategory = new(e.Category)

	m.form = huh.NewForm(
		huh.NewGroup(categorySelect(m.formCategory)),
	).WithWidth(45).WithShowHelp(false)

	return m.openForm(expensesStateCategory)
}

func (m ExpensesModel) openDelete() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.target = e
	m.formConfirm = new(false)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %q (%s)?", e.Name, FormatAmount(e.Amount))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	return m.openForm(expensesStateDelete)
}

func (m ExpensesModel) openForm(state expensesState) (tea.Model, tea.Cmd) {
	m.state = state
	m.status, m.err = "", nil
	m.table.Blur()

	return m, m.form.Init()
}

func (m *ExpensesModel) closeForm() {
	m.state = expensesStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	// A submitted form waits for expenseSavedMsg.
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		submit := m.submitCmd()
		m.form = nil

		return m, submit
	}

	return m, cmd
}

func (m ExpensesModel) View() string {
	content := m.tableView()

	if m.state != expensesStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(statusLine(m.status, m.err) + content)
}

func (m ExpensesModel) tableView() string {
	if m.summary.Count == 0 {
		return faintStyle.Render("No expenses yet. Press a to add one.")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	total := fmt.Sprintf("Total: %s across %d expenses",
		accentStyle.Render(FormatAmount(m.summary.Total)), m.summary.Count)

	return lipgloss.JoinVertical(lipgloss.Left, tableView, total)
}

func (m *ExpensesModel) refreshTable() {
	rows := make([]table.Row, 0, m.summary.Count+len(m.summary.Groups))
	refs := make([]*expense.Expense, 0, cap(rows))

	for _, g := range m.summary.Groups {
		rows = append(rows, table.Row{strings.ToUpper(g.Label), "", FormatAmount(g.Total), ""})
		refs = append(refs, nil)

		for i := range g.Expenses {
			e := &g.Expenses[i]
			rows = append(rows, table.Row{"  " + e.Name, e.Category.Label(), FormatAmount(e.Amount), FormatTime(e.Date)})
			refs = append(refs, e)
		}
	}

	m.rows = refs
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func categorySelect(value *expense.Category) *huh.Select[expense.Category] {
	opts := make([]huh.Option[expense.Category], len(expense.Categories))
	for i, c := range expense.Categories {
		opts[i] = huh.NewOption(c.Label(), c)
	}

	return huh.NewSelect[expense.Category]().
		Key("category").
		Title("Category").
		Options(opts...).
		Value(value)
}

// validateAmount accepts positive amounts with either decimal separator.
func validateAmount(s string) error {
	a, err := money.Parse(s)
	if err != nil {
		return errors.New("enter an amount like 4.50")
	}

	if a <= 0 {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

// Messages

type expensesLoadedMsg struct {
	summary ledger.Summary
}

type expenseSavedMsg struct {
	status string
	err    error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return expensesLoadedMsg{summary: m.svc.Summary()}
	}
}

func (m ExpensesModel) submitCmd() tea.Cmd {
	var (
		state    = m.state
		target   = m.target
		sign     = m.sign
		name     = deref(m.formName)
		amount   = deref(m.formAmount)
		category = deref(m.formCategory)
		confirm  = deref(m.formConfirm)
	)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		switch state {
		case expensesStateAdd:
			a, err := money.Parse(amount)
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			e, err := m.svc.AddExpense(ctx, name, a, category)
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			return expenseSavedMsg{status: fmt.Sprintf("Added %q (%s).", e.Name, FormatAmount(e.Amount))}

		case expensesStateAmount:
			a, err := money.Parse(amount)
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			e, err := m.svc.AdjustAmount(ctx, target.ID, sign*a)
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			return expenseSavedMsg{status: fmt.Sprintf("%q is now %s.", e.Name, FormatAmount(e.Amount))}

		case expensesStateCategory:
			e, err := m.svc.UpdateCategory(ctx, target.ID, category)
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			return expenseSavedMsg{status: fmt.Sprintf("%q moved to %s.", e.Name, e.Category.Label())}

		case expensesStateDelete:
			if !confirm {
				return expenseSavedMsg{}
			}

			e, err := m.svc.DeleteExpense(ctx, target.ID)
			if err != nil {
				return expenseSavedMsg{err: err}
			}

			return expenseSavedMsg{status: fmt.Sprintf("Deleted %q.", e.Name)}
		}

		return expenseSavedMsg{}
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}

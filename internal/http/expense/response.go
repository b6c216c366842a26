package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/money"
	"github.com/MrJamesThe3rd/spend/internal/transaction"
)

type expenseResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Amount        money.Amount     `json:"amount"`
	Category      expense.Category `json:"category"`
	CategoryLabel string           `json:"categoryLabel"`
	Date          time.Time        `json:"date"`
}

type groupResponse struct {
	Category expense.Category  `json:"category"`
	Label    string            `json:"label"`
	Total    money.Amount      `json:"total"`
	Expenses []expenseResponse `json:"expenses"`
}

type summaryResponse struct {
	Total  money.Amount    `json:"total"`
	Count  int             `json:"count"`
	Groups []groupResponse `json:"groups"`
}

type categoryResponse struct {
	Value expense.Category `json:"value"`
	Label string           `json:"label"`
}

type auditResponse struct {
	ExpenseID uuid.UUID                 `json:"expenseId"`
	Exists    bool                      `json:"exists"`
	Balanced  bool                      `json:"balanced"`
	Logged    money.Amount              `json:"logged"`
	Actual    money.Amount              `json:"actual"`
	History   []money.Amount            `json:"history"`
	Entries   []transaction.Transaction `json:"entries"`
}

func toResponse(e expense.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		Name:          e.Name,
		Amount:        e.Amount,
		Category:      e.Category,
		CategoryLabel: e.Category.Label(),
		Date:          e.Date,
	}
}

func toResponseList(items []expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(items))
	for i, e := range items {
		resp[i] = toResponse(e)
	}

	return resp
}

func toSummaryResponse(s ledger.Summary) summaryResponse {
	groups := make([]groupResponse, len(s.Groups))
	for i, g := range s.Groups {
		groups[i] = groupResponse{
			Category: g.Category,
			Label:    g.Label,
			Total:    g.Total,
			Expenses: toResponseList(g.Expenses),
		}
	}

	return summaryResponse{Total: s.Total, Count: s.Count, Groups: groups}
}

func toAuditResponse(a ledger.Audit) auditResponse {
	entries := a.Entries
	if entries == nil {
		entries = []transaction.Transaction{}
	}

	history := a.History
	if history == nil {
		history = []money.Amount{}
	}

	return auditResponse{
		ExpenseID: a.ExpenseID,
		Exists:    a.Exists,
		Balanced:  a.Balanced,
		Logged:    a.Logged,
		Actual:    a.Actual,
		History:   history,
		Entries:   entries,
	}
}

// Package ledger keeps the expense store and its transaction log consistent.
// Every amount-affecting mutation appends exactly one log entry, and both
// collections are persisted together or not at all.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/money"
	"github.com/MrJamesThe3rd/spend/internal/transaction"
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() uuid.UUID

	// mu spans the store mutation, the log append and the write to repo.
	mu           sync.Mutex
	expenses     *expense.Store
	transactions *transaction.Log
}

type Option func(*Service)

// WithClock sets the source of expense dates and log timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs sets the source of expense and log entry IDs.
func WithIDs(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		now:          time.Now,
		newID:        uuid.New,
		expenses:     expense.NewStore(nil),
		transactions: transaction.NewLog(nil),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewExpense is the input for a single add-expense intent.
type NewExpense struct {
	Name     string
	Amount   money.Amount
	Category expense.Category
}

// UpdateParams changes an expense in one step. Amount is an absolute value and
// Delta a signed change; at most one of them may be set.
type UpdateParams struct {
	Amount   *money.Amount
	Delta    *money.Amount
	Category *expense.Category
}

func (p UpdateParams) delta(current money.Amount) (money.Amount, error) {
	switch {
	case p.Amount != nil && p.Delta != nil:
		return 0, &expense.ValidationError{Field: "amount", Message: "set either amount or delta, not both"}
	case p.Amount != nil:
		if *p.Amount < 0 {
			return 0, &expense.ValidationError{Field: "amount", Message: "must not be negative"}
		}

		return *p.Amount - current, nil
	case p.Delta != nil:
		return *p.Delta, nil
	}

	return 0, nil
}

// Load replaces the in-memory state with what the repository holds.
// Missing keys are treated as empty collections.
func (s *Service) Load(ctx context.Context) error {
	var expenses []expense.Expense
	if err := s.load(ctx, KeyExpenses, &expenses); err != nil {
		return err
	}

	var transactions []transaction.Transaction
	if err := s.load(ctx, KeyTransactions, &transactions); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = expense.NewStore(expenses)
	s.transactions = transaction.NewLog(transactions)

	slog.InfoContext(ctx, "ledger loaded", "expenses", len(expenses), "transactions", len(transactions))

	return nil
}

func (s *Service) load(ctx context.Context, key string, dst any) error {
	raw, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrStorage, key, err)
	}

	if !found || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrStorage, key, err)
	}

	return nil
}

func (s *Service) AddExpense(ctx context.Context, name string, amount money.Amount, category expense.Category) (expense.Expense, error) {
	var created expense.Expense

	err := s.mutate(ctx, func(st *state) (changes, error) {
		e, err := st.expenses.Create(s.draft(name, amount, category))
		if err != nil {
			return 0, err
		}

		st.transactions.Append(s.entry(e.ID, e.Name, transaction.KindCreated, e.Amount, 0, e.Amount))
		created = e

		return changedExpenses | changedTransactions, nil
	})
	if err != nil {
		return expense.Expense{}, err
	}

	slog.DebugContext(ctx, "expense created", "id", created.ID, "amount", created.Amount.String())

	return created, nil
}

// ImportExpenses adds every expense or none of them.
func (s *Service) ImportExpenses(ctx context.Context, items []NewExpense) ([]expense.Expense, error) {
	if len(items) == 0 {
		return nil, nil
	}

	created := make([]expense.Expense, 0, len(items))

	err := s.mutate(ctx, func(st *state) (changes, error) {
		for i, item := range items {
			e, err := st.expenses.Create(s.draft(item.Name, item.Amount, item.Category))
			if err != nil {
				return 0, fmt.Errorf("expense %d: %w", i+1, err)
			}

			st.transactions.Append(s.entry(e.ID, e.Name, transaction.KindCreated, e.Amount, 0, e.Amount))
			created = append(created, e)
		}

		return changedExpenses | changedTransactions, nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "expenses imported", "count", len(created))

	return created, nil
}

// AdjustAmount adds a signed delta to the expense amount. A zero delta is not logged.
func (s *Service) AdjustAmount(ctx context.Context, id uuid.UUID, delta money.Amount) (expense.Expense, error) {
	return s.UpdateExpense(ctx, id, UpdateParams{Delta: &delta})
}

// UpdateCategory reassigns the category. Category changes never produce a log entry.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, category expense.Category) (expense.Expense, error) {
	return s.UpdateExpense(ctx, id, UpdateParams{Category: &category})
}

func (s *Service) UpdateExpense(ctx context.Context, id uuid.UUID, params UpdateParams) (expense.Expense, error) {
	var updated expense.Expense

	err := s.mutate(ctx, func(st *state) (changes, error) {
		current, err := st.expenses.Get(id)
		if err != nil {
			return 0, err
		}

		delta, err := params.delta(current.Amount)
		if err != nil {
			return 0, err
		}

		var c changes

		updated = current

		if params.Category != nil {
			updated, err = st.expenses.UpdateCategory(id, *params.Category)
			if err != nil {
				return 0, err
			}

			if updated.Category != current.Category {
				c |= changedExpenses
			}
		}

		if delta == 0 {
			return c, nil
		}

		updated, err = st.expenses.AdjustAmount(id, delta)
		if err != nil {
			return 0, err
		}

		kind := transaction.KindAdded
		if delta < 0 {
			kind = transaction.KindSubtracted
		}

		st.transactions.Append(s.entry(id, current.Name, kind, delta, current.Amount, updated.Amount))

		return c | changedExpenses | changedTransactions, nil
	})
	if err != nil {
		return expense.Expense{}, err
	}

	slog.DebugContext(ctx, "expense updated", "id", id, "amount", updated.Amount.String(), "category", updated.Category)

	return updated, nil
}

// DeleteExpense removes the expense and logs its last amount as a negative change.
// Earlier log entries for the expense are kept.
func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) (expense.Expense, error) {
	var removed expense.Expense

	err := s.mutate(ctx, func(st *state) (changes, error) {
		e, err := st.expenses.Delete(id)
		if err != nil {
			return 0, err
		}

		st.transactions.Append(s.entry(e.ID, e.Name, transaction.KindDeleted, -e.Amount, e.Amount, 0))
		removed = e

		return changedExpenses | changedTransactions, nil
	})
	if err != nil {
		return expense.Expense{}, err
	}

	slog.DebugContext(ctx, "expense deleted", "id", id, "amount", removed.Amount.String())

	return removed, nil
}

// DeleteTransaction removes one log entry. Unknown ids are ignored.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, func(st *state) (changes, error) {
		if !st.transactions.Remove(id) {
			slog.DebugContext(ctx, "transaction already gone", "id", id)
			return 0, nil
		}

		return changedTransactions, nil
	})
}

// ClearTransactions empties the log. Expenses are not touched.
func (s *Service) ClearTransactions(ctx context.Context) error {
	return s.mutate(ctx, func(st *state) (changes, error) {
		st.transactions.Clear()
		return changedTransactions, nil
	})
}

func (s *Service) draft(name string, amount money.Amount, category expense.Category) expense.Expense {
	return expense.Expense{
		ID:       s.newID(),
		Name:     name,
		Amount:   amount,
		Category: category,
		Date:     s.now().UTC(),
	}
}

func (s *Service) entry(expenseID uuid.UUID, name string, kind transaction.Kind, change, previous, next money.Amount) transaction.Transaction {
	return transaction.Transaction{
		ID:             s.newID(),
		ExpenseID:      expenseID,
		ExpenseName:    name,
		Kind:           kind,
		Change:         change,
		PreviousAmount: previous,
		NewAmount:      next,
		Timestamp:      s.now().UTC(),
	}
}

func (s *Service) Expenses() []expense.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expenses.List()
}

func (s *Service) Expense(id uuid.UUID) (expense.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.expenses.Get(id)
}

func (s *Service) Transactions() []transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.transactions.List()
}

// Summary is the derived read model. It is recomputed on every call.
type Summary struct {
	Total  money.Amount
	Count  int
	Groups []expense.Group
}

func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Summary{
		Total:  s.expenses.Total(),
		Count:  s.expenses.Len(),
		Groups: s.expenses.Groups(),
	}
}

// Audit compares what the log says about an expense with its actual amount.
type Audit struct {
	ExpenseID uuid.UUID
	Exists    bool
	Entries   []transaction.Transaction
	History   []money.Amount
	Logged    money.Amount
	Actual    money.Amount
	Balanced  bool
}

// Audit replays the log entries of one expense. A deleted expense is expected
// to sum to zero. Removing log entries by hand makes an expense unbalanced.
func (s *Service) Audit(id uuid.UUID) (Audit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.transactions.ForExpense(id)

	e, err := s.expenses.Get(id)
	exists := err == nil

	if !exists && len(entries) == 0 {
		return Audit{}, expense.ErrNotFound
	}

	a := Audit{
		ExpenseID: id,
		Exists:    exists,
		Entries:   entries,
		History:   transaction.Replay(entries),
		Logged:    transaction.Sum(entries),
	}

	if exists {
		a.Actual = e.Amount
	}

	a.Balanced = a.Logged == a.Actual

	return a, nil
}

package expense

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/money"
)

// Store is the ordered, newest-first collection of expenses.
// It is not safe for concurrent use; the ledger serialises access to it.
type Store struct {
	items []Expense
}

// NewStore wraps records loaded from persistence. The slice is copied.
func NewStore(items []Expense) *Store {
	return &Store{items: append([]Expense(nil), items...)}
}

// Clone returns an independent copy.
func (s *Store) Clone() *Store {
	return NewStore(s.items)
}

// Create validates e and inserts it at the front. The caller assigns ID and Date.
func (s *Store) Create(e Expense) (Expense, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return Expense{}, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	if e.Amount <= 0 {
		return Expense{}, &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	if !e.Category.Valid() {
		return Expense{}, &ValidationError{Field: "category", Message: "unknown category " + string(e.Category)}
	}

	if err := s.checkRoom(e.Amount); err != nil {
		return Expense{}, err
	}

	s.items = append([]Expense{e}, s.items...)

	return e, nil
}

// AdjustAmount applies a signed delta. A result below zero is rejected, never clamped.
func (s *Store) AdjustAmount(id uuid.UUID, delta money.Amount) (Expense, error) {
	i := s.index(id)
	if i < 0 {
		return Expense{}, ErrNotFound
	}

	current := s.items[i].Amount
	if delta < 0 && delta < -current {
		return Expense{}, &ValidationError{
			Field:   "amount",
			Message: "cannot subtract more than the current amount " + current.String(),
		}
	}

	if delta > 0 {
		if err := s.checkRoom(delta); err != nil {
			return Expense{}, err
		}
	}

	s.items[i].Amount = current + delta

	return s.items[i], nil
}

func (s *Store) UpdateCategory(id uuid.UUID, category Category) (Expense, error) {
	i := s.index(id)
	if i < 0 {
		return Expense{}, ErrNotFound
	}

	if !category.Valid() {
		return Expense{}, &ValidationError{Field: "category", Message: "unknown category " + string(category)}
	}

	s.items[i].Category = category

	return s.items[i], nil
}

// Delete removes the expense and returns its last state.
func (s *Store) Delete(id uuid.UUID) (Expense, error) {
	i := s.index(id)
	if i < 0 {
		return Expense{}, ErrNotFound
	}

	removed := s.items[i]
	s.items = append(s.items[:i:i], s.items[i+1:]...)

	return removed, nil
}

func (s *Store) Get(id uuid.UUID) (Expense, error) {
	i := s.index(id)
	if i < 0 {
		return Expense{}, ErrNotFound
	}

	return s.items[i], nil
}

// List returns a copy of all expenses, newest first.
func (s *Store) List() []Expense {
	return append([]Expense(nil), s.items...)
}

func (s *Store) Len() int {
	return len(s.items)
}

// Total is the sum of every expense amount.
func (s *Store) Total() money.Amount {
	var total money.Amount
	for _, e := range s.items {
		total += e.Amount
	}

	return total
}

// checkRoom rejects an increase that would take the total past money.MaxAmount.
// Keeping the total bounded keeps every per-category sum and delta in range too.
func (s *Store) checkRoom(increase money.Amount) error {
	if increase > money.MaxAmount-s.Total() {
		return &ValidationError{
			Field:   "amount",
			Message: "would take the total above " + money.MaxAmount.String(),
		}
	}

	return nil
}

// Groups buckets expenses by category in display order. Empty categories are left out.
func (s *Store) Groups() []Group {
	byCategory := make(map[Category][]Expense, len(Categories))
	for _, e := range s.items {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	var groups []Group

	for _, c := range Categories {
		items := byCategory[c]
		if len(items) == 0 {
			continue
		}

		g := Group{Category: c, Label: c.Label(), Expenses: items}
		for _, e := range items {
			g.Total += e.Amount
		}

		groups = append(groups, g)
	}

	return groups
}

func (s *Store) index(id uuid.UUID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}

	return -1
}

package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/transaction"
)

type state struct {
	expenses     *expense.Store
	transactions *transaction.Log
}

// changes records which collections a mutation touched.
type changes uint8

const (
	changedExpenses changes = 1 << iota
	changedTransactions
)

// mutate runs fn against copies of the current state. The copies replace the
// live state only after every touched collection has been committed.
func (s *Service) mutate(ctx context.Context, fn func(st *state) (changes, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &state{
		expenses:     s.expenses.Clone(),
		transactions: s.transactions.Clone(),
	}

	c, err := fn(next)
	if err != nil {
		return err
	}

	if c == 0 {
		return nil
	}

	if err := s.persist(ctx, next, c); err != nil {
		return err
	}

	s.expenses = next.expenses
	s.transactions = next.transactions

	return nil
}

func (s *Service) persist(ctx context.Context, st *state, c changes) error {
	batch, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: beginning batch: %w", ErrStorage, err)
	}
	defer batch.Rollback()

	if c&changedExpenses != 0 {
		if err := set(ctx, batch, KeyExpenses, st.expenses.List()); err != nil {
			return err
		}
	}

	if c&changedTransactions != 0 {
		if err := set(ctx, batch, KeyTransactions, st.transactions.List()); err != nil {
			return err
		}
	}

	if err := batch.Commit(); err != nil {
		return fmt.Errorf("%w: committing batch: %w", ErrStorage, err)
	}

	return nil
}

// set stores items as a JSON array; an empty collection is written as [].
func set[T any](ctx context.Context, batch Batch, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := batch.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrStorage, key, err)
	}

	return nil
}

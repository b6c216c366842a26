package transaction

import (
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/money"
)

// Log is the newest-first audit trail. Entries can be removed or cleared but never edited.
type Log struct {
	entries []Transaction
}

func NewLog(entries []Transaction) *Log {
	return &Log{entries: append([]Transaction(nil), entries...)}
}

func (l *Log) Clone() *Log {
	return NewLog(l.entries)
}

// Append inserts tx at the front. The caller is trusted to supply consistent amounts.
func (l *Log) Append(tx Transaction) {
	l.entries = append([]Transaction{tx}, l.entries...)
}

// Remove deletes the entry with the given id. It reports whether anything was removed.
func (l *Log) Remove(id uuid.UUID) bool {
	i := slices.IndexFunc(l.entries, func(tx Transaction) bool { return tx.ID == id })
	if i < 0 {
		return false
	}

	l.entries = slices.Delete(slices.Clone(l.entries), i, i+1)

	return true
}

func (l *Log) Clear() {
	l.entries = nil
}

// List returns a copy of all entries, newest first.
func (l *Log) List() []Transaction {
	return append([]Transaction(nil), l.entries...)
}

func (l *Log) Len() int {
	return len(l.entries)
}

// ForExpense returns the entries referencing expenseID, newest first.
func (l *Log) ForExpense(expenseID uuid.UUID) []Transaction {
	var out []Transaction

	for _, tx := range l.entries {
		if tx.ExpenseID == expenseID {
			out = append(out, tx)
		}
	}

	return out
}

// Replay walks newest-first entries from oldest to newest, accumulating Change.
// The result is the amount after each entry, in chronological order.
func Replay(entries []Transaction) []money.Amount {
	history := make([]money.Amount, 0, len(entries))

	var running money.Amount
	for i := len(entries) - 1; i >= 0; i-- {
		running += entries[i].Change
		history = append(history, running)
	}

	return history
}

// Sum adds up Change across entries.
func Sum(entries []Transaction) money.Amount {
	var total money.Amount
	for _, tx := range entries {
		total += tx.Change
	}

	return total
}

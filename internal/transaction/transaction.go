package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/money"
)

// Kind is the balance-affecting event that produced a log entry.
type Kind string

const (
	KindCreated    Kind = "created"
	KindAdded      Kind = "added"
	KindSubtracted Kind = "subtracted"
	KindDeleted    Kind = "deleted"
)

func (k Kind) Valid() bool {
	switch k {
	case KindCreated, KindAdded, KindSubtracted, KindDeleted:
		return true
	}

	return false
}

// Label capitalises the kind for display ("Created").
func (k Kind) Label() string {
	switch k {
	case KindCreated:
		return "Created"
	case KindAdded:
		return "Added"
	case KindSubtracted:
		return "Subtracted"
	case KindDeleted:
		return "Deleted"
	}

	return string(k)
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed := Kind(text)
	if !parsed.Valid() {
		return fmt.Errorf("unknown transaction kind %q", text)
	}

	*k = parsed

	return nil
}

// Transaction is an immutable audit entry for one change to an expense.
// ExpenseID is a back-reference only; the expense may no longer exist.
type Transaction struct {
	ID             uuid.UUID    `json:"id"`
	ExpenseID      uuid.UUID    `json:"expenseId"`
	ExpenseName    string       `json:"expenseName"`
	Kind           Kind         `json:"kind"`
	Change         money.Amount `json:"change"`
	PreviousAmount money.Amount `json:"previousAmount"`
	NewAmount      money.Amount `json:"newAmount"`
	Timestamp      time.Time    `json:"timestamp"`
}

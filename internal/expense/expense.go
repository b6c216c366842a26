package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spend/internal/money"
)

// Expense is a single recorded spend. ID and Date never change after creation.
type Expense struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Amount   money.Amount `json:"amount"`
	Category Category     `json:"category"`
	Date     time.Time    `json:"date"`
}

// Group is the slice of expenses belonging to one category together with their subtotal.
type Group struct {
	Category Category
	Label    string
	Total    money.Amount
	Expenses []Expense
}

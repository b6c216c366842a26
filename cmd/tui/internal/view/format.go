package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/spend/internal/money"
)

const dbTimeout = 5 * time.Second

// Currency is the symbol amounts are rendered with.
var Currency = "$"

func FormatAmount(a money.Amount) string {
	return a.Format(Currency)
}

// FormatChange renders a signed change, e.g. "+$2.00".
func FormatChange(a money.Amount) string {
	if a < 0 {
		return a.Format(Currency)
	}

	return "+" + a.Format(Currency)
}

// FormatTime formats a timestamp in local time as YYYY-MM-DD HH:MM.
func FormatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// Package matching suggests categories for imported rows by looking at how
// similarly named expenses were categorised before.
package matching

import (
	"strings"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

// Source provides the expenses to learn from, newest first.
type Source interface {
	Expenses() []expense.Expense
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Suggest returns the category of the known expense whose name occurs in raw.
// The longest name wins; on a tie the newest expense wins. Expenses filed
// under "other" teach nothing. Returns "" when nothing matches.
func (s *Service) Suggest(raw string) expense.Category {
	raw = normalize(raw)
	if raw == "" {
		return ""
	}

	var (
		best    expense.Category
		bestLen int
	)

	for _, e := range s.source.Expenses() {
		if e.Category == expense.CategoryOther {
			continue
		}

		pattern := normalize(e.Name)
		if len(pattern) <= bestLen || !strings.Contains(raw, pattern) {
			continue
		}

		best, bestLen = e.Category, len(pattern)
	}

	return best
}

// Apply fills in a suggested category for every item still filed under "other".
func (s *Service) Apply(items []ledger.NewExpense) []ledger.NewExpense {
	for i := range items {
		if items[i].Category != expense.CategoryOther {
			continue
		}

		if c := s.Suggest(items[i].Name); c != "" {
			items[i].Category = c
		}
	}

	return items
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

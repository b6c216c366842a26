package cgd

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spend/internal/money"
)

// parseEuropeanAmount reads the bank's "1.234,56" notation.
// Examples: "1.234,56" -> 1234.56, "-588,74" -> -588.74, "10,00" -> 10.00.
func parseEuropeanAmount(s string) (money.Amount, error) {
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return money.FromDecimal(d)
}

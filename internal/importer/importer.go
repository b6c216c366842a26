// Package importer turns uploaded CSV files into expenses ready for
// ledger.Service.ImportExpenses.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/spend/internal/ledger"
)

// Source names a CSV layout.
type Source string

const (
	SourceSpend Source = "spend"
	SourceCGD   Source = "cgd"
)

// Sources lists the supported layouts in the order they are offered to users.
var Sources = []Source{SourceSpend, SourceCGD}

type Parser interface {
	Parse(r io.Reader) ([]ledger.NewExpense, error)
}

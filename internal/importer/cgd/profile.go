package cgd

import "github.com/MrJamesThe3rd/spend/internal/money"

// layout is the column set of one CGD export format. Card exports carry
// separate debit and credit columns; account exports carry a single signed
// amount where spending is negative.
type layout struct {
	name   string
	date   string
	desc   string
	signed string
	debit  string
	credit string
}

func (l *layout) columns() []string {
	if l.signed != "" {
		return []string{l.date, l.desc, l.signed}
	}

	return []string{l.date, l.desc, l.debit, l.credit}
}

// spent returns the money that left the account in this row.
// Credits, zero amounts and unparseable cells report false.
func (l *layout) spent(cols colIndex, row []string) (money.Amount, bool) {
	if l.signed != "" {
		a, ok := amountAt(row, cols[l.signed])
		if !ok || a >= 0 {
			return 0, false
		}

		return a.Abs(), true
	}

	a, ok := amountAt(row, cols[l.debit])
	if !ok || a == 0 {
		return 0, false
	}

	return a.Abs(), true
}

// layouts are tried in order; card comes first since its date column name is
// the least specific.
var layouts = []layout{
	{name: "cartão", date: "Data", desc: "Descrição", debit: "Débito", credit: "Crédito"},
	{name: "extrato", date: "Data mov.", desc: "Descrição", signed: "Movimento"},
	{name: "conta", date: "Data mov.", desc: "Descrição", signed: "Montante"},
}

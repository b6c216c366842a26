package cgd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/spend/internal/encoding"
	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

// Parser turns Caixa Geral de Depósitos CSV exports into expenses.
// The export format (conta, extrato, cartão) is picked by matching column
// headers against known layouts. Only debits become expenses; they land in
// the "other" category since the bank does not classify them.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.NewExpense, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	l, colMap, headerIdx := detectLayout(rows)
	if l == nil {
		return nil, fmt.Errorf("no matching CGD format found: expected columns for conta, extrato, or cartão")
	}

	return parseRows(l, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectLayout scans rows for a header that matches a known layout.
// Returns the matched layout, column index map, and header row index.
func detectLayout(rows [][]string) (*layout, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range layouts {
			if hasColumns(cols, layouts[i].columns()) {
				return &layouts[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func hasColumns(cols colIndex, names []string) bool {
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts debits from data rows using the matched layout.
// headerRowNum is the 0-based index of the header in the input, used in error messages.
func parseRows(l *layout, cols colIndex, rows [][]string, headerRowNum int) ([]ledger.NewExpense, error) {
	dateIdx := cols[l.date]
	descIdx := cols[l.desc]

	var out []ledger.NewExpense

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		if !isMovement(row, dateIdx) {
			continue
		}

		// Card exports pad merchant names with runs of spaces.
		desc := strings.Join(strings.Fields(cellValue(row, descIdx)), " ")
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := l.spent(cols, row)
		if !ok {
			continue
		}

		out = append(out, ledger.NewExpense{
			Name:     desc,
			Amount:   amount,
			Category: expense.CategoryOther,
		})
	}

	return out, nil
}

// isMovement reports whether the date cell holds a movement date.
// Footer and page rows fail here and are skipped.
func isMovement(row []string, idx int) bool {
	_, err := time.Parse("02-01-2006", cellValue(row, idx))
	return err == nil
}

func amountAt(row []string, idx int) (money.Amount, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	a, err := parseEuropeanAmount(s)
	if err != nil {
		return 0, false
	}

	return a, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

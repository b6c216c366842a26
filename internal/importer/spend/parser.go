// Package spend reads the app's own CSV layout: name, amount and an optional
// category column, in any order.
package spend

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/spend/internal/encoding"
	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

const (
	colName     = "name"
	colAmount   = "amount"
	colCategory = "category"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.NewExpense, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = delimiter(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file: expected a %s,%s[,%s] header", colName, colAmount, colCategory)
	}

	cols := make(map[string]int)
	for i, cell := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	for _, required := range []string{colName, colAmount} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	var out []ledger.NewExpense

	for i, row := range rows[1:] {
		rowNum := i + 2

		if blank(row) {
			continue
		}

		item, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		out = append(out, item)
	}

	return out, nil
}

func parseRow(row []string, cols map[string]int) (ledger.NewExpense, error) {
	amount, err := money.Parse(cell(row, cols[colAmount]))
	if err != nil {
		return ledger.NewExpense{}, err
	}

	category := expense.CategoryOther

	if idx, ok := cols[colCategory]; ok {
		if raw := cell(row, idx); raw != "" {
			category, err = expense.ParseCategory(strings.ToLower(raw))
			if err != nil {
				return ledger.NewExpense{}, err
			}
		}
	}

	return ledger.NewExpense{
		Name:     cell(row, cols[colName]),
		Amount:   amount,
		Category: category,
	}, nil
}

// delimiter picks ';' when the header line uses it, ',' otherwise.
// Semicolon files are what spreadsheets write in comma-decimal locales.
func delimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}

	return ','
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

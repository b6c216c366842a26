package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/export"
	"github.com/MrJamesThe3rd/spend/internal/importer/spend"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

type fakeSource []expense.Expense

func (f fakeSource) Expenses() []expense.Expense { return f }

var expenses = fakeSource{
	{
		ID:       uuid.New(),
		Name:     "Coffee, large",
		Amount:   money.Cents(450),
		Category: expense.CategoryEntertainment,
		Date:     time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC),
	},
	{
		ID:       uuid.New(),
		Name:     "Rent",
		Amount:   money.Cents(90000),
		Category: expense.CategoryDebts,
		Date:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	},
}

func TestService_WriteCSV(t *testing.T) {
	var buf bytes.Buffer

	n, err := export.NewService(expenses).WriteCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	want := "name,amount,category,date\n" +
		"\"Coffee, large\",4.50,entertainment,2026-01-30T09:00:00Z\n" +
		"Rent,900.00,debts,2026-01-01T00:00:00Z\n"
	assert.Equal(t, want, buf.String())
}

func TestService_WriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	n, err := export.NewService(fakeSource{}).WriteCSV(&buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "name,amount,category,date\n", buf.String())
}

func TestService_RoundTripsThroughImporter(t *testing.T) {
	var buf bytes.Buffer

	_, err := export.NewService(expenses).WriteCSV(&buf)
	require.NoError(t, err)

	items, err := spend.NewParser().Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, []ledger.NewExpense{
		{Name: "Coffee, large", Amount: money.Cents(450), Category: expense.CategoryEntertainment},
		{Name: "Rent", Amount: money.Cents(90000), Category: expense.CategoryDebts},
	}, items)
}

func TestService_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, n, err := export.NewService(expenses).Export(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "spend-"))
	assert.Equal(t, ".csv", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Rent,900.00,debts")
}

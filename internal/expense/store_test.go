package expense_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

func draft(name string, amount money.Amount, category expense.Category) expense.Expense {
	return expense.Expense{
		ID:       uuid.New(),
		Name:     name,
		Amount:   amount,
		Category: category,
		Date:     time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestStore_Create(t *testing.T) {
	type args struct {
		name     string
		amount   money.Amount
		category expense.Category
	}

	type testCase struct {
		name      string
		args      args
		wantField string
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{name: "  Coffee ", amount: 450, category: expense.CategoryGroceries},
		},
		{
			name:      "EmptyName",
			args:      args{name: "", amount: 1000, category: expense.CategoryOther},
			wantField: "name",
		},
		{
			name:      "WhitespaceName",
			args:      args{name: "   ", amount: 1000, category: expense.CategoryOther},
			wantField: "name",
		},
		{
			name:      "ZeroAmount",
			args:      args{name: "Rent", amount: 0, category: expense.CategoryDebts},
			wantField: "amount",
		},
		{
			name:      "NegativeAmount",
			args:      args{name: "Rent", amount: -1, category: expense.CategoryDebts},
			wantField: "amount",
		},
		{
			name:      "UnknownCategory",
			args:      args{name: "Rent", amount: 100, category: expense.Category("housing")},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := expense.NewStore(nil)

			in := draft(tt.args.name, tt.args.amount, tt.args.category)

			got, err := s.Create(in)
			if tt.wantField != "" {
				require.ErrorIs(t, err, expense.ErrValidation)

				var vErr *expense.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.Zero(t, s.Len())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, in.ID, got.ID)
			assert.Equal(t, "Coffee", got.Name)
			assert.Equal(t, in.Date, got.Date)
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestStore_CreateIsNewestFirst(t *testing.T) {
	s := expense.NewStore(nil)

	first, err := s.Create(draft("First", 100, expense.CategoryOther))
	require.NoError(t, err)
	second, err := s.Create(draft("Second", 200, expense.CategoryOther))
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestStore_AdjustAmount(t *testing.T) {
	s := expense.NewStore(nil)
	e, err := s.Create(draft("Coffee", 650, expense.CategoryGroceries))
	require.NoError(t, err)

	got, err := s.AdjustAmount(e.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(850), got.Amount)

	_, err = s.AdjustAmount(e.ID, -1000)
	require.ErrorIs(t, err, expense.ErrValidation)

	current, err := s.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(850), current.Amount, "rejected delta must not be applied")

	got, err = s.AdjustAmount(e.ID, -850)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(0), got.Amount, "subtracting the full amount is allowed")

	_, err = s.AdjustAmount(uuid.New(), 100)
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestStore_TotalStaysInRange(t *testing.T) {
	s := expense.NewStore(nil)

	big, err := s.Create(draft("Big", money.MaxAmount-100, expense.CategoryDebts))
	require.NoError(t, err)

	tests := []struct {
		name   string
		change func() error
	}{
		{
			name: "CreatePastMax",
			change: func() error {
				_, err := s.Create(draft("Small", 101, expense.CategoryOther))
				return err
			},
		},
		{
			name: "AddPastMax",
			change: func() error {
				_, err := s.AdjustAmount(big.ID, 101)
				return err
			},
		},
		{
			name: "AddWouldWrap",
			change: func() error {
				_, err := s.AdjustAmount(big.ID, money.Cents(math.MaxInt64))
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change()
			require.ErrorIs(t, err, expense.ErrValidation)

			var vErr *expense.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "amount", vErr.Field)
			assert.Contains(t, vErr.Message, "total above")

			assert.Equal(t, 1, s.Len())
			assert.Equal(t, money.MaxAmount-100, s.Total())
		})
	}

	_, err = s.AdjustAmount(big.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, money.MaxAmount, s.Total(), "reaching the maximum exactly is allowed")
}

func TestStore_UpdateCategory(t *testing.T) {
	s := expense.NewStore(nil)
	e, err := s.Create(draft("Bus", 250, expense.CategoryOther))
	require.NoError(t, err)

	got, err := s.UpdateCategory(e.ID, expense.CategoryTransportation)
	require.NoError(t, err)
	assert.Equal(t, expense.CategoryTransportation, got.Category)
	assert.Equal(t, money.Cents(250), got.Amount)

	_, err = s.UpdateCategory(e.ID, expense.Category("bogus"))
	assert.ErrorIs(t, err, expense.ErrValidation)

	_, err = s.UpdateCategory(uuid.New(), expense.CategoryOther)
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	s := expense.NewStore(nil)
	keep, err := s.Create(draft("Keep", 100, expense.CategoryOther))
	require.NoError(t, err)
	drop, err := s.Create(draft("Drop", 300, expense.CategoryDebts))
	require.NoError(t, err)

	clone := s.Clone()

	got, err := s.Delete(drop.ID)
	require.NoError(t, err)
	assert.Equal(t, drop, got)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, keep.ID, s.List()[0].ID)
	assert.Equal(t, 2, clone.Len(), "clones are independent")

	_, err = s.Delete(drop.ID)
	assert.ErrorIs(t, err, expense.ErrNotFound)
}

func TestStore_Totals(t *testing.T) {
	s := expense.NewStore(nil)
	for _, in := range []struct {
		name     string
		amount   money.Amount
		category expense.Category
	}{
		{"Milk", 199, expense.CategoryGroceries},
		{"Bread", 250, expense.CategoryGroceries},
		{"Loan", 10000, expense.CategoryDebts},
		{"Gift", 1500, expense.CategoryOther},
	} {
		_, err := s.Create(draft(in.name, in.amount, in.category))
		require.NoError(t, err)
	}

	assert.Equal(t, money.Cents(11949), s.Total())

	groups := s.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, expense.CategoryGroceries, groups[0].Category)
	assert.Equal(t, "Groceries", groups[0].Label)
	assert.Equal(t, money.Cents(449), groups[0].Total)
	assert.Len(t, groups[0].Expenses, 2)
	assert.Equal(t, expense.CategoryDebts, groups[1].Category)
	assert.Equal(t, expense.CategoryOther, groups[2].Category)
}

func TestCategory(t *testing.T) {
	c, err := expense.ParseCategory("healthcare")
	require.NoError(t, err)
	assert.Equal(t, expense.CategoryHealthcare, c)
	assert.Equal(t, "Healthcare", c.Label())

	_, err = expense.ParseCategory("Healthcare")
	assert.ErrorIs(t, err, expense.ErrValidation)

	assert.Len(t, expense.Categories, 7)
}

func TestExpense_JSONRejectsUnknownCategory(t *testing.T) {
	var e expense.Expense

	err := json.Unmarshal([]byte(`{"id":"6f1c2f4e-3c55-4a53-9b53-0c1f3b2a1e11","name":"x","amount":1,"category":"housing","date":"2025-01-02T03:04:05Z"}`), &e)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"id":"6f1c2f4e-3c55-4a53-9b53-0c1f3b2a1e11","name":"x","amount":4.5,"category":"groceries","date":"2025-01-02T03:04:05Z"}`), &e)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(450), e.Amount)
	assert.Equal(t, expense.CategoryGroceries, e.Category)
}

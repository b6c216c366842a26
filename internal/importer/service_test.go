package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spend/internal/importer"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	t.Run("Spend", func(t *testing.T) {
		items, err := svc.Import(importer.SourceSpend, strings.NewReader("name,amount\nCoffee,4.5\n"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, money.Cents(450), items[0].Amount)
	})

	t.Run("CGD", func(t *testing.T) {
		items, err := svc.Import(importer.SourceCGD, strings.NewReader("Data mov.;Descrição;Montante\n30-01-2026;TEST;-10,00\n"))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "TEST", items[0].Name)
	})

	t.Run("UnknownSource", func(t *testing.T) {
		_, err := svc.Import("ofx", strings.NewReader(""))
		require.ErrorIs(t, err, importer.ErrUnknownSource)
	})

	t.Run("ParseError", func(t *testing.T) {
		_, err := svc.Import(importer.SourceSpend, strings.NewReader(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing spend file")
	})
}

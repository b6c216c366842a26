package cgd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/spend/internal/expense"
	"github.com/MrJamesThe3rd/spend/internal/importer/cgd"
	"github.com/MrJamesThe3rd/spend/internal/ledger"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name string
		csv  string
		want []ledger.NewExpense
	}

	other := expense.CategoryOther

	tests := []testCase{
		{
			name: "Conta",
			csv: `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE
NIF;"=""123"""

Dados da conta
Conta;0000 - EUR - Conta Extracto
Saldo contabilístico;1.000,00 EUR

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO FINA;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
`,
			want: []ledger.NewExpense{
				{Name: "INSTITUTO GESTAO FINA", Amount: money.Cents(58874), Category: other},
			},
		},
		{
			name: "Extrato",
			csv: `Consultar extrato - 15-02-2026 : 0829015676030
Conta ;0829015676030 - EUR - Conta Extracto
Saldo contabilístico final ;41.393,66

Data mov. ;Data valor ;Origem ;Descrição ;Movimento ;Estorno ;Saldo contabilístico após movimento ;
13-02-2026;13-02-2026;"=""0003""";PAGAMENTO TSU ;-608,13;  ;41.393,66;
04-02-2026;04-02-2026;SIBS ;TFI Wise ;4.324,06;  ;51.302,85;
`,
			want: []ledger.NewExpense{
				{Name: "PAGAMENTO TSU", Amount: money.Cents(60813), Category: other},
			},
		},
		{
			name: "Cartao",
			csv: `Consultar saldos e movimentos de cartões - 15-02-2026
Conta cartão ;4163 **** **** 8016 - EUR - Business Débito
Desde ;15/12/2025

Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;PA GONDOMAR         GONDOMAR ;64,00 ; ;
31-12-2025 ;29-12-2025 ;UBER   *TRIP             HELP.UBER.COMNL ;47,91 ; ;
20-12-2025 ;19-12-2025 ;REFUND AMAZON ;  ;25,00 ;
 ; ; ; ;Página 1/2 ;
`,
			want: []ledger.NewExpense{
				{Name: "PA GONDOMAR GONDOMAR", Amount: money.Cents(6400), Category: other},
				{Name: "UBER *TRIP HELP.UBER.COMNL", Amount: money.Cents(4791), Category: other},
			},
		},
		{
			name: "DifferentColumnOrder",
			csv: `Random;MetaData
Montante;Descrição;Data mov.;Ignored
-10,00;TEST_ORDER;30-01-2026;XXX
`,
			want: []ledger.NewExpense{
				{Name: "TEST_ORDER", Amount: money.Cents(1000), Category: other},
			},
		},
		{
			name: "LargeAmount",
			csv: `Data mov.;Descrição;Montante
30-01-2026;BIG TRANSFER;-1.234.567,89
`,
			want: []ledger.NewExpense{
				{Name: "BIG TRANSFER", Amount: money.Cents(123456789), Category: other},
			},
		},
		{
			name: "SkipsFooterAndZeroRows",
			csv: `Data mov.;Descrição;Montante
30-01-2026;TEST;-10,00
30-01-2026;NOTHING;0,00
Totais;;;;
`,
			want: []ledger.NewExpense{
				{Name: "TEST", Amount: money.Cents(1000), Category: other},
			},
		},
		{
			name: "HeaderOnly",
			csv:  `Data mov.;Data-valor;Descrição;Montante`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cgd.NewParser().Parse(strings.NewReader(tt.csv))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data mov.;Descrição;Montante\n30-01-2026;CAFÉ CENTRAL;-10,00\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	got, err := cgd.NewParser().Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "CAFÉ CENTRAL", got[0].Name)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantMsg string
	}{
		{name: "EmptyFile", csv: "", wantMsg: "no matching CGD format"},
		{
			name:    "MissingDescription",
			csv:     "Data mov.;Descrição;Montante\n30-01-2026;;-10,00\n",
			wantMsg: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cgd.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

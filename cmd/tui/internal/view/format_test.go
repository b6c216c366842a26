package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spend/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spend/internal/money"
)

func TestFormatChange(t *testing.T) {
	tests := []struct {
		name string
		in   money.Amount
		want string
	}{
		{name: "Added", in: 200, want: "+$2.00"},
		{name: "Subtracted", in: -650, want: "-$6.50"},
		{name: "Zero", in: 0, want: "+$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.FormatChange(tt.in))
		})
	}

	assert.Equal(t, "-$6.50", view.FormatAmount(-650))
}

package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name      string
		v         float64
		precision int
		want      string
	}{
		{"integer", 18248, 0, "18,248"},
		{"rounds to integer", 18248.56, 0, "18,249"},
		{"two decimals", 1234.567, 2, "1,234.57"},
		{"small", 12.5, 1, "12.5"},
		{"negative", -1234.5, 2, "-1,234.50"},
		{"negative below one", -0.5, 2, "-0.50"},
		{"negative zero", -0.0001, 2, "0.00"},
		{"millions", 1234567, 0, "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.v, tt.precision))
		})
	}
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$85,800.00", FormatDollars(85800, "USD"))
	assert.Equal(t, "-$30,197.65", FormatDollars(-30197.65, ""))
	assert.Equal(t, "1,000.00 EUR", FormatDollars(1000, "eur"))
	assert.Equal(t, "-12.30 CAD", FormatDollars(-12.3, "CAD"))
	assert.Equal(t, "$0.00", FormatDollars(-0.001, "USD"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+12%", FormatPercent(12))
	assert.Equal(t, "-70%", FormatPercent(-70))
	assert.Equal(t, "0%", FormatPercent(0.2))
	assert.Equal(t, "+1,200%", FormatPercent(1200))
}

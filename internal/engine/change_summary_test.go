package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetChangeSummaryRow(t *testing.T) {
	tests := []struct {
		name     string
		baseline float64
		followup float64
		want     ChangeSummary
	}{
		{"decrease", 85800, 26000, ChangeSummary{85800, 26000, -59800, -70}},
		{"increase", 100, 150, ChangeSummary{100, 150, 50, 50}},
		{"zero baseline", 0, 42, ChangeSummary{0, 42, 42, 0}},
		{"both zero", 0, 0, ChangeSummary{}},
		{"rounds half away from zero", 200, 201, ChangeSummary{200, 201, 1, 1}},
		{"to zero", 10, 0, ChangeSummary{10, 0, -10, -100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetChangeSummaryRow(tt.baseline, tt.followup))
		})
	}
}

func TestGetChangeSummaryRow_Properties(t *testing.T) {
	values := []float64{0, 1, 3.5, 12, 100, 1e6}
	for _, b := range values {
		for _, f := range values {
			row := GetChangeSummaryRow(b, f)
			assert.InDelta(t, f-b, row.Change, 1e-9)
			if b == 0 {
				assert.Zero(t, row.ChangePercent)
			}
		}
	}
}

func TestChangeSummary_Polarity(t *testing.T) {
	down := GetChangeSummaryRow(10, 5)
	assert.True(t, down.IsSavings())
	assert.False(t, down.IsIncrease())

	up := GetChangeSummaryRow(5, 10)
	assert.False(t, up.IsSavings())
	assert.True(t, up.IsIncrease())

	flat := GetChangeSummaryRow(5, 5)
	assert.False(t, flat.IsSavings())
	assert.False(t, flat.IsIncrease())
}

func TestChangeSummary_Add(t *testing.T) {
	sum := GetChangeSummaryRow(100, 50).Add(GetChangeSummaryRow(100, 250))
	assert.Equal(t, ChangeSummary{200, 300, 100, 50}, sum)

	assert.Equal(t, GetChangeSummaryRow(3, 4), ChangeSummary{}.Add(GetChangeSummaryRow(3, 4)))
}

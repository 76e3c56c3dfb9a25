package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		input       CarbonInput
		wantMiles   float64
		wantPhones  float64
		wantIsEmpty bool
		wantErr     error
	}{
		{"kilograms", CarbonInput{Value: 150, Unit: "kg"}, 781.25, 18248.18, false, nil},
		{"grams", CarbonInput{Value: 150000, Unit: "g"}, 781.25, 18248.18, false, nil},
		{"metric tonnes", CarbonInput{Value: 0.15, Unit: "mt"}, 781.25, 18248.18, false, nil},
		{"MTCO2e", CarbonInput{Value: 0.15, Unit: "MTCO2e"}, 781.25, 18248.18, false, nil},
		{"below threshold", CarbonInput{Value: 0.5, Unit: "kg"}, 0, 0, true, nil},
		{"zero", CarbonInput{Value: 0, Unit: "mt"}, 0, 0, true, nil},
		{"negative", CarbonInput{Value: -1, Unit: "kg"}, 0, 0, true, ErrNegativeValue},
		{"unknown unit", CarbonInput{Value: 1, Unit: "stone"}, 0, 0, true, ErrInvalidUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, got.IsEmpty)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIsEmpty, got.IsEmpty)
			if tt.wantIsEmpty {
				assert.Empty(t, got.Results)
				return
			}

			require.Len(t, got.Results, 4)
			assert.Equal(t, EquivalencyMilesDriven, got.Results[0].Type)
			assert.InDelta(t, tt.wantMiles, got.Results[0].Value, tt.wantMiles*0.01)
			assert.Equal(t, EquivalencySmartphonesCharged, got.Results[1].Type)
			assert.InDelta(t, tt.wantPhones, got.Results[1].Value, tt.wantPhones*0.01)
			assert.Equal(t, EquivalencyTreeSeedlings, got.Results[2].Type)
			assert.Equal(t, EquivalencyHomeDays, got.Results[3].Type)
		})
	}
}

func TestCalculate_Text(t *testing.T) {
	got, err := Calculate(CarbonInput{Value: 150, Unit: "kg"})
	require.NoError(t, err)

	assert.Equal(t, "Equivalent to driving ~781 miles or charging ~18,248 smartphones", got.DisplayText)
	assert.Equal(t, "(≈ 781 mi, 18,248 phones)", got.CompactText)
	assert.Equal(t, "3", got.Results[2].FormattedValue)
	assert.Equal(t, "8", got.Results[3].FormattedValue)
}

func TestCalculate_LargeNumbers(t *testing.T) {
	got, err := Calculate(CarbonInput{Value: 1000, Unit: "mt"})
	require.NoError(t, err)
	// 1,000,000 kg / 0.00822 kg per charge
	assert.Equal(t, "~121.7 million", got.Results[1].FormattedValue)
	assert.Equal(t, "~5.2 million", got.Results[0].FormattedValue)
}

func TestDescribeChange(t *testing.T) {
	t.Run("reduction", func(t *testing.T) {
		got, err := DescribeChange(0.15)
		require.NoError(t, err)
		assert.True(t, got.Reduction)
		assert.False(t, got.Equivalency.IsEmpty)
		assert.Equal(t,
			"0.15 MTCO2e avoided per year. Equivalent to driving ~781 miles or charging ~18,248 smartphones",
			got.Headline)
	})

	t.Run("increase uses magnitude", func(t *testing.T) {
		got, err := DescribeChange(-0.15)
		require.NoError(t, err)
		assert.False(t, got.Reduction)
		assert.InDelta(t, -0.15, got.MTCO2e, 1e-12)
		assert.InDelta(t, 150.0, got.Equivalency.InputKg, 1e-9)
		assert.Contains(t, got.Headline, "added per year")
	})

	t.Run("negligible", func(t *testing.T) {
		got, err := DescribeChange(0.0001)
		require.NoError(t, err)
		assert.True(t, got.Equivalency.IsEmpty)
		assert.Equal(t, "0.00 MTCO2e change", got.Headline)
	})
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "HomeDays", EquivalencyHomeDays.String())
	assert.Equal(t, "EquivalencyType(9)", EquivalencyType(9).String())
}

func TestFormatLarge(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{999, "999"},
		{123456.7, "123,457"},
		{1_000_000, "~1.0 million"},
		{2_750_000, "~2.8 million"},
		{1_500_000_000, "~1.5 billion"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLarge(tt.in))
	}
}

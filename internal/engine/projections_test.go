package engine

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reusecalc/internal/greenops"
	"github.com/rshade/reusecalc/internal/reference"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(testTables(t))
	require.NoError(t, err)
	return c
}

func TestNewCalculator_NilTables(t *testing.T) {
	_, err := NewCalculator(nil)
	require.Error(t, err)
}

func TestGetProjections_Golden(t *testing.T) {
	c := newTestCalculator(t)

	p, err := c.GetProjections(context.Background(), goldenProject())
	require.NoError(t, err)

	fin := p.FinancialResults
	assert.Equal(t, -30197.65, fin.AnnualCostChanges.Total)
	assert.Equal(t, 29200.0, fin.AnnualCostChanges.AdditionalCosts)
	assert.Equal(t, 5.75, fin.AnnualCostChanges.ReusableProductCosts)
	assert.Equal(t, -59800.0, fin.AnnualCostChanges.SingleUseProductChange)
	assert.Equal(t, 396.6, fin.AnnualCostChanges.WasteHauling)
	assert.Zero(t, fin.AnnualCostChanges.Utilities)

	assert.Equal(t, OneTimeCosts{ReusableProductCosts: 46, AdditionalCosts: 10000, Total: 10046}, fin.OneTimeCosts)
	require.NotNil(t, fin.Summary.PaybackPeriodsMonths)
	assert.Equal(t, 4.0, *fin.Summary.PaybackPeriodsMonths)
	require.NotNil(t, fin.Summary.AnnualROIPercent)
	assert.Equal(t, 200.59, *fin.Summary.AnnualROIPercent)

	assert.Equal(t,
		ChangeSummary{Baseline: 85800, Followup: 26000, Change: -59800, ChangePercent: -70},
		p.SingleUseProductResults.Summary.AnnualCost)

	assert.Equal(t, fin.AnnualCostChanges.Total, p.AnnualSummary.DollarCost)
	assert.Equal(t, p.SingleUseProductResults.Summary.AnnualUnits.Change, p.AnnualSummary.SingleUseProductCount)
	assert.Equal(t, p.EnvironmentalResults.AnnualGasEmissionChanges.Total, p.AnnualSummary.GreenhouseGasEmissions)
	assert.Equal(t, p.EnvironmentalResults.AnnualWasteChanges.Total.Change, p.AnnualSummary.WasteWeight)
}

func TestGetProjections_JSONShape(t *testing.T) {
	c := newTestCalculator(t)
	p, err := c.GetProjections(context.Background(), goldenProject())
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &top))
	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t,
		[]string{"annualSummary", "environmentalResults", "financialResults", "singleUseProductResults"}, keys)
}

func TestGetProjections_NoPaybackIsNull(t *testing.T) {
	project := goldenProject()
	project.SingleUseItems[0].NewCaseCost = 550

	p, err := newTestCalculator(t).GetProjections(context.Background(), project)
	require.NoError(t, err)
	assert.Nil(t, p.FinancialResults.Summary.PaybackPeriodsMonths)
	assert.Nil(t, p.FinancialResults.Summary.AnnualROIPercent)

	data, err := json.Marshal(p.FinancialResults.Summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"paybackPeriodsMonths":null`)
	assert.Contains(t, string(data), `"annualROIPercent":null`)
}

func TestGetProjections_Idempotent(t *testing.T) {
	c := newTestCalculator(t)
	project := goldenProject()
	project.Dishwasher = testDishwasher()

	first, err := c.GetProjections(context.Background(), project)
	require.NoError(t, err)
	second, err := c.GetProjections(context.Background(), project)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGetProjections_WasteMonotonicInNewCases(t *testing.T) {
	c := newTestCalculator(t)
	project := goldenProject()
	project.SingleUseItems = append(project.SingleUseItems, SingleUseLineItemPopulated{
		CaseCost: 40, CasesPurchased: 2, Frequency: reference.FrequencyMonthly,
		NewCaseCost: 40, NewCasesPurchased: 2, Product: clamshell(),
	})

	previous := -1.0
	for newCases := 0.0; newCases <= 10; newCases++ {
		project.SingleUseItems[0].NewCasesPurchased = newCases
		p, err := c.GetProjections(context.Background(), project)
		require.NoError(t, err)

		forecast := p.EnvironmentalResults.AnnualWasteChanges.Total.Followup
		assert.GreaterOrEqual(t, forecast, previous, "newCasesPurchased=%v", newCases)
		previous = forecast
	}
}

func TestGetProjections_NoDishwasher(t *testing.T) {
	p, err := newTestCalculator(t).GetProjections(context.Background(), goldenProject())
	require.NoError(t, err)

	assert.Zero(t, p.EnvironmentalResults.AnnualGasEmissionChanges.Dishwashing)
	assert.Zero(t, p.FinancialResults.AnnualCostChanges.Utilities)
	assert.Equal(t, DishwasherResults{}, p.FinancialResults.UtilityDetails)
	assert.Equal(t, ChangeSummary{}, p.EnvironmentalResults.AnnualWaterUsageChanges.Dishwashing)
}

func TestGetProjections_WithDishwasher(t *testing.T) {
	c := newTestCalculator(t)
	project := goldenProject()
	project.Dishwasher = testDishwasher()

	p, err := c.GetProjections(context.Background(), project)
	require.NoError(t, err)

	dish, err := GetDishwasherUsage(c.Tables(), project.Dishwasher, c.EffectiveRates(project))
	require.NoError(t, err)

	assert.Equal(t, dish, p.FinancialResults.UtilityDetails)
	assert.Equal(t, dish.CostChange(), p.FinancialResults.AnnualCostChanges.Utilities)
	assert.Negative(t, p.EnvironmentalResults.AnnualGasEmissionChanges.Dishwashing)
	assert.InDelta(t,
		p.EnvironmentalResults.AnnualGasEmissionChanges.LandfillWaste+
			p.EnvironmentalResults.AnnualGasEmissionChanges.Dishwashing,
		p.EnvironmentalResults.AnnualGasEmissionChanges.Total, 1e-12)
}

func TestGetProjections_DishwasherOnlyChange(t *testing.T) {
	project := goldenProject()
	project.SingleUseItems[0].NewCasesPurchased = project.SingleUseItems[0].CasesPurchased
	project.Dishwasher = testDishwasher()

	p, err := newTestCalculator(t).GetProjections(context.Background(), project)
	require.NoError(t, err)

	gas := p.EnvironmentalResults.AnnualGasEmissionChanges
	assert.Zero(t, gas.LandfillWaste)
	assert.Negative(t, gas.Dishwashing, "extra racks add emissions")
	assert.Equal(t, gas.Dishwashing, gas.Total)

	change, err := greenops.DescribeChange(p.AnnualSummary.GreenhouseGasEmissions)
	require.NoError(t, err)
	assert.False(t, change.Reduction)
	assert.NotContains(t, change.Headline, "avoided")
}

func TestGetProjections_HugeFiniteInput(t *testing.T) {
	project := goldenProject()
	project.SingleUseItems[0].CaseCost = 1e300
	project.SingleUseItems[0].CasesPurchased = 1e10

	var err error
	require.NotPanics(t, func() {
		_, err = newTestCalculator(t).GetProjections(context.Background(), project)
	})
	require.ErrorIs(t, err, ErrNonFiniteResult)
}

func TestGetProjections_ZeroCasesBoundary(t *testing.T) {
	project := goldenProject()
	project.SingleUseItems[0].CasesPurchased = 0
	project.SingleUseItems[0].NewCasesPurchased = 0

	p, err := newTestCalculator(t).GetProjections(context.Background(), project)
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	assert.Zero(t, p.SingleUseProductResults.Summary.ProductCount.Baseline)
	assert.Zero(t, p.SingleUseProductResults.Summary.ProductCount.ChangePercent)
	assert.Zero(t, p.EnvironmentalResults.AnnualGasEmissionChanges.LandfillWaste)
	assert.Zero(t, p.EnvironmentalResults.AnnualWasteChanges.Total.ChangePercent)
}

func TestEffectiveRates(t *testing.T) {
	c := newTestCalculator(t)
	ca, ok := c.Tables().StateRates("CA")
	require.True(t, ok)

	got := c.EffectiveRates(ProjectInput{State: "CA", UtilityRates: reference.UtilityRates{Electric: 0.3}})
	assert.Equal(t, reference.UtilityRates{Electric: 0.3, Gas: ca.Rates.Gas, Water: ca.Rates.Water}, got)

	got = c.EffectiveRates(ProjectInput{State: "ZZ"})
	assert.Equal(t, c.Tables().NationalAverageRates(), got)
}

func TestGetProjections_InvalidInput(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		name    string
		mutate  func(p *ProjectInput)
		wantErr error
	}{
		{"negative cases", func(p *ProjectInput) { p.SingleUseItems[0].CasesPurchased = -1 }, ErrInvalidInput},
		{"NaN case cost", func(p *ProjectInput) { p.SingleUseItems[0].CaseCost = math.NaN() }, ErrInvalidInput},
		{"one-time single use", func(p *ProjectInput) {
			p.SingleUseItems[0].Frequency = reference.FrequencyOneTime
		}, ErrInvalidInput},
		{"repurchase over 100", func(p *ProjectInput) { p.ReusableItems[0].AnnualRepurchasePercentage = 101 }, ErrInvalidInput},
		{"unknown cost category", func(p *ProjectInput) { p.AdditionalCosts[0].Category = "Catering" }, reference.ErrNotFound},
		{"unknown waste stream", func(p *ProjectInput) { p.NewWasteHauling[0].WasteStream = "Compost" }, reference.ErrNotFound},
		{"operating days", func(p *ProjectInput) {
			p.Dishwasher = testDishwasher()
			p.Dishwasher.OperatingDays = 8
		}, ErrInvalidInput},
		{"temperature", func(p *ProjectInput) {
			p.Dishwasher = testDishwasher()
			p.Dishwasher.Temperature = "Warm"
		}, ErrInvalidInput},
		{"fuel", func(p *ProjectInput) {
			p.Dishwasher = testDishwasher()
			p.Dishwasher.BoosterWaterHeaterFuelType = "Coal"
		}, ErrInvalidInput},
		{"unknown frequency", func(p *ProjectInput) { p.SingleUseItems[0].Frequency = "Hourly" }, reference.ErrNotFound},
		{"unknown product type", func(p *ProjectInput) { p.SingleUseItems[0].Product.Type = "spork" }, reference.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := goldenProject()
			tt.mutate(&project)
			_, err := c.GetProjections(context.Background(), project)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProjections_Validate(t *testing.T) {
	p := &Projections{}
	require.NoError(t, p.Validate())

	p.EnvironmentalResults.AnnualWaterUsageChanges.Total.ChangePercent = math.Inf(1)
	err := p.Validate()
	require.ErrorIs(t, err, ErrNonFiniteResult)
	assert.Contains(t, err.Error(), "AnnualWaterUsageChanges.Total.ChangePercent")

	nan := math.NaN()
	p = &Projections{FinancialResults: FinancialResults{Summary: FinancialSummary{AnnualROIPercent: &nan}}}
	require.ErrorIs(t, p.Validate(), ErrNonFiniteResult)

	p = &Projections{SingleUseProductResults: SingleUseProductResults{ResultsByType: ResultsByType{
		Material: BreakdownTable{Rows: []BreakdownRow{{AnnualUnits: ChangeSummary{Change: math.Inf(-1)}}}},
	}}}
	require.ErrorIs(t, p.Validate(), ErrNonFiniteResult)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reusecalc/internal/reference"
)

func TestAnnualWeight(t *testing.T) {
	assert.InDelta(t, 3*52*1000*0.02, AnnualWeight(3, 52, 1000, 0.02), 1e-9)
	assert.Zero(t, AnnualWeight(0, 52, 1000, 0.02))
}

func TestCalculateMaterialGHGReduction(t *testing.T) {
	paper := reference.Material{ID: "paper", MTCO2ePerLb: -0.00304}

	tests := []struct {
		name      string
		cases     float64
		newCases  float64
		want      float64
		wantDelta float64
	}{
		{"forecast weight increase is credited", 3, 4, 1 * 52 * 1000 * 0.02 * 0.00304, 1e-9},
		{"forecast weight decrease contributes zero", 4, 3, 0, 0},
		{"no change contributes zero", 3, 3, 0, 0},
		{"zero cases does not divide", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMaterialGHGReduction(tt.cases, tt.newCases, 52, 1000, paper, 0.02)
			assert.InDelta(t, tt.want, got, tt.wantDelta)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}

	none := reference.Material{ID: reference.MaterialNone}
	assert.Zero(t, CalculateMaterialGHGReduction(1, 100, 365, 1000, none, 1))
}

func TestGetAnnualGasEmissionChanges(t *testing.T) {
	tables := testTables(t)
	items := []SingleUseLineItemPopulated{{
		CasesPurchased:    2,
		NewCasesPurchased: 3,
		Frequency:         reference.FrequencyMonthly,
		Product:           hotCup(),
	}}

	paper, err := tables.Material("paper")
	require.NoError(t, err)
	ldpe, err := tables.Material("ldpe")
	require.NoError(t, err)
	box, err := tables.Material(reference.MaterialCorrugatedCardboard)
	require.NoError(t, err)

	want := CalculateMaterialGHGReduction(2, 3, 12, 1000, paper, 0.02) +
		CalculateMaterialGHGReduction(2, 3, 12, 1000, ldpe, 0.002) +
		CalculateMaterialGHGReduction(2, 3, 12, 1, box, 2.5)

	dish := DishwasherResults{
		Baseline: DishwasherUsage{CO2Weight: 1.5},
		Forecast: DishwasherUsage{CO2Weight: 2.25},
	}
	got, err := GetAnnualGasEmissionChanges(tables, items, dish)
	require.NoError(t, err)
	assert.InDelta(t, want, got.LandfillWaste, 1e-12)
	assert.InDelta(t, -0.75, got.Dishwashing, 1e-12, "added dishwasher emissions count against the total")
	assert.InDelta(t, got.LandfillWaste+got.Dishwashing, got.Total, 1e-12)
}

func TestGetAnnualGasEmissionChanges_UnknownMaterial(t *testing.T) {
	product := hotCup()
	product.PrimaryMaterial = "unobtainium"
	items := []SingleUseLineItemPopulated{{
		CasesPurchased: 1, Frequency: reference.FrequencyWeekly, Product: product,
	}}

	_, err := GetAnnualGasEmissionChanges(testTables(t), items, DishwasherResults{})
	require.ErrorIs(t, err, reference.ErrNotFound)
}

func TestGetAnnualWasteChanges(t *testing.T) {
	items := []SingleUseLineItemPopulated{
		{CasesPurchased: 3, NewCasesPurchased: 1, Frequency: reference.FrequencyWeekly, Product: hotCup()},
		{CasesPurchased: 2, NewCasesPurchased: 2, Frequency: reference.FrequencyMonthly, Product: clamshell()},
	}

	got, err := GetAnnualWasteChanges(testTables(t), items)
	require.NoError(t, err)

	product := 3*52*1000*0.022 + 2*12*200*0.05
	newProduct := 1*52*1000*0.022 + 2*12*200*0.05
	box := 3*52*2.5 + 2*12*4.0
	newBox := 1*52*2.5 + 2*12*4.0

	assert.InDelta(t, product, got.DisposableProductWeight.Baseline, 1e-9)
	assert.InDelta(t, newProduct, got.DisposableProductWeight.Followup, 1e-9)
	assert.InDelta(t, box, got.DisposableShippingBoxWeight.Baseline, 1e-9)
	assert.InDelta(t, newBox, got.DisposableShippingBoxWeight.Followup, 1e-9)
	assert.InDelta(t, product+box, got.Total.Baseline, 1e-9)
	assert.InDelta(t, newProduct+newBox, got.Total.Followup, 1e-9)
	assert.True(t, got.Total.IsSavings())
}

func TestGetAnnualWasteChanges_LineItemUnitsPerCase(t *testing.T) {
	items := []SingleUseLineItemPopulated{{
		CasesPurchased: 1, Frequency: reference.FrequencyAnnually, UnitsPerCase: 500, Product: hotCup(),
	}}

	got, err := GetAnnualWasteChanges(testTables(t), items)
	require.NoError(t, err)
	assert.InDelta(t, 500*0.022, got.DisposableProductWeight.Baseline, 1e-9)
}

func TestGetAnnualWaterUsageChanges(t *testing.T) {
	tables := testTables(t)
	items := []SingleUseLineItemPopulated{{
		CasesPurchased: 1, NewCasesPurchased: 0, Frequency: reference.FrequencyAnnually, Product: clamshell(),
	}}
	dish := DishwasherResults{
		Baseline: DishwasherUsage{WaterUsage: 100},
		Forecast: DishwasherUsage{WaterUsage: 400},
	}

	fiber, err := tables.Material("molded-fiber")
	require.NoError(t, err)
	box, err := tables.Material(reference.MaterialCorrugatedCardboard)
	require.NoError(t, err)

	got, err := GetAnnualWaterUsageChanges(tables, items, dish)
	require.NoError(t, err)

	disposable := 200*0.05*fiber.WaterUsageGalPerLb + 4*box.WaterUsageGalPerLb
	assert.InDelta(t, disposable, got.DisposableProducts.Baseline, 1e-9)
	assert.Zero(t, got.DisposableProducts.Followup)
	assert.Equal(t, GetChangeSummaryRow(100, 400), got.Dishwashing)
	assert.InDelta(t, disposable+100, got.Total.Baseline, 1e-9)
	assert.InDelta(t, 400, got.Total.Followup, 1e-9)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reusecalc/internal/reference"
)

func TestGetSingleUseProductResults_Summary(t *testing.T) {
	items := []SingleUseLineItemPopulated{
		{CaseCost: 550, CasesPurchased: 3, Frequency: reference.FrequencyWeekly,
			NewCaseCost: 125, NewCasesPurchased: 4, Product: hotCup()},
		{CaseCost: 40, CasesPurchased: 2, Frequency: reference.FrequencyMonthly,
			NewCaseCost: 40, NewCasesPurchased: 0, Product: clamshell()},
	}

	got, err := GetSingleUseProductResults(testTables(t), items)
	require.NoError(t, err)

	assert.Equal(t, GetChangeSummaryRow(85800+960, 26000), got.Summary.AnnualCost)
	assert.Equal(t, GetChangeSummaryRow(156+24, 208), got.Summary.AnnualUnits)
	assert.Equal(t, GetChangeSummaryRow(2, 1), got.Summary.ProductCount)
}

func TestGetSingleUseProductResults_ZeroCases(t *testing.T) {
	items := []SingleUseLineItemPopulated{
		{CaseCost: 99, CasesPurchased: 0, Frequency: reference.FrequencyDaily, Product: hotCup()},
	}

	got, err := GetSingleUseProductResults(testTables(t), items)
	require.NoError(t, err)
	assert.Equal(t, ChangeSummary{}, got.Summary.ProductCount)
	assert.Equal(t, ChangeSummary{}, got.Summary.AnnualCost)
	require.Len(t, got.ResultsByType.Material.Rows, 1)
	assert.Zero(t, got.ResultsByType.Material.Rows[0].ProductCount.Baseline)
}

func TestGetSingleUseProductResults_Breakdowns(t *testing.T) {
	lid := hotCup()
	lid.ID = "lid"
	lid.Type = "cup-lid"
	lid.PrimaryMaterial = "pet"

	items := []SingleUseLineItemPopulated{
		{CaseCost: 40, CasesPurchased: 1, Frequency: reference.FrequencyWeekly, NewCasesPurchased: 1,
			NewCaseCost: 40, Product: clamshell()},
		{CaseCost: 30, CasesPurchased: 2, Frequency: reference.FrequencyWeekly, NewCasesPurchased: 1,
			NewCaseCost: 30, Product: hotCup()},
		{CaseCost: 20, CasesPurchased: 1, Frequency: reference.FrequencyWeekly, NewCasesPurchased: 0,
			NewCaseCost: 20, Product: lid},
	}

	got, err := GetSingleUseProductResults(testTables(t), items)
	require.NoError(t, err)

	categories := got.ResultsByType.ProductCategory.Rows
	require.Len(t, categories, 2)
	assert.Equal(t, "cups-lids", categories[0].ID)
	assert.Equal(t, "Cups & Lids", categories[0].Name)
	assert.Equal(t, GetChangeSummaryRow(3*52, 52), categories[0].AnnualUnits)
	assert.Equal(t, GetChangeSummaryRow(2, 1), categories[0].ProductCount)
	assert.Equal(t, "food-containers", categories[1].ID)

	types := got.ResultsByType.ProductType.Rows
	require.Len(t, types, 3)
	assert.Equal(t, []string{"hot-cup", "cup-lid", "clamshell"}, []string{types[0].ID, types[1].ID, types[2].ID})

	materials := got.ResultsByType.Material.Rows
	require.Len(t, materials, 3)
	ids := map[string]bool{}
	for _, row := range materials {
		ids[row.ID] = true
		assert.NotEmpty(t, row.Name)
	}
	assert.Equal(t, map[string]bool{"paper": true, "molded-fiber": true, "pet": true}, ids)

	var cost float64
	for _, row := range categories {
		cost += row.AnnualCost.Baseline
	}
	assert.InDelta(t, got.Summary.AnnualCost.Baseline, cost, 1e-9)
}

func TestGetSingleUseProductResults_UnknownCategory(t *testing.T) {
	product := hotCup()
	product.Category = "cutlery-drawer"

	_, err := GetSingleUseProductResults(testTables(t), []SingleUseLineItemPopulated{
		{CasesPurchased: 1, Frequency: reference.FrequencyWeekly, Product: product},
	})
	require.ErrorIs(t, err, reference.ErrNotFound)
}

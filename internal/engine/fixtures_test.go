package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/reusecalc/internal/reference"
)

func testTables(t *testing.T) *reference.Tables {
	t.Helper()
	tables, err := reference.Default()
	require.NoError(t, err)
	return tables
}

func hotCup() SingleUseProduct {
	return SingleUseProduct{
		ID:                             "hot-cup-12oz",
		Description:                    "12oz paper hot cup",
		Category:                       "cups-lids",
		Type:                           "hot-cup",
		UnitsPerCase:                   1000,
		BoxWeight:                      2.5,
		ItemWeight:                     0.022,
		PrimaryMaterial:                "paper",
		PrimaryMaterialWeightPerUnit:   0.02,
		SecondaryMaterial:              "ldpe",
		SecondaryMaterialWeightPerUnit: 0.002,
	}
}

func clamshell() SingleUseProduct {
	return SingleUseProduct{
		ID:                           "clamshell-9in",
		Category:                     "food-containers",
		Type:                         "clamshell",
		UnitsPerCase:                 200,
		BoxWeight:                    4,
		ItemWeight:                   0.05,
		PrimaryMaterial:              "molded-fiber",
		PrimaryMaterialWeightPerUnit: 0.05,
	}
}

// goldenProject is the reference workbook scenario: one single-use item at
// 3 cases/week moving to 4 cheaper cases/week, one reusable item, a $10,000
// one-time plus $80/day additional cost, and a garbage contract increase.
func goldenProject() ProjectInput {
	return ProjectInput{
		ID:    "golden",
		Name:  "Golden Scenario",
		State: "CA",
		SingleUseItems: []SingleUseLineItemPopulated{{
			ProductID:         "hot-cup-12oz",
			CaseCost:          550,
			CasesPurchased:    3,
			Frequency:         reference.FrequencyWeekly,
			NewCaseCost:       125,
			NewCasesPurchased: 4,
			Product:           hotCup(),
		}},
		ReusableItems: []ReusableLineItem{{
			ProductName:                "Ceramic mug",
			CaseCost:                   46,
			CasesPurchased:             1,
			AnnualRepurchasePercentage: 12.5,
		}},
		AdditionalCosts: []AdditionalCost{
			{Cost: 10000, Frequency: reference.FrequencyOneTime, Category: "Dish Machine"},
			{Cost: 80, Frequency: reference.FrequencyDaily, Category: "Dishwashing Labor"},
		},
		WasteHauling:    []WasteHaulingService{{WasteStream: "Garbage", MonthlyCost: 1200}},
		NewWasteHauling: []WasteHaulingService{{WasteStream: "Garbage", MonthlyCost: 1233.05}},
	}
}

func testDishwasher() *DishWasher {
	return &DishWasher{
		Type:                        "Undercounter",
		Temperature:                 reference.TemperatureHigh,
		EnergyStarCertified:         true,
		OperatingDays:               5,
		RacksPerDay:                 10,
		AdditionalRacksPerDay:       6,
		BoosterWaterHeaterFuelType:  reference.FuelElectric,
		BuildingWaterHeaterFuelType: reference.FuelGas,
	}
}

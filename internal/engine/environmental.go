package engine

import (
	"fmt"

	"github.com/rshade/reusecalc/internal/reference"
)

// AnnualWeight returns the pounds of one material purchased in a year.
func AnnualWeight(casesPurchased, annualOccurrence, unitsPerCase, weightPerUnit float64) float64 {
	return casesPurchased * annualOccurrence * unitsPerCase * weightPerUnit
}

// CalculateMaterialGHGReduction returns the avoided emissions, in MTCO2e, for
// one material of one line item. Only a positive forecast-minus-baseline
// weight change is credited; any other change contributes exactly 0. Since
// MTCO2ePerLb is stored negative, a credited change yields a positive value.
func CalculateMaterialGHGReduction(
	casesPurchased, newCasesPurchased, annualOccurrence, unitsPerCase float64,
	material reference.Material,
	weightPerUnit float64,
) float64 {
	baseline := AnnualWeight(casesPurchased, annualOccurrence, unitsPerCase, weightPerUnit)
	forecast := AnnualWeight(newCasesPurchased, annualOccurrence, unitsPerCase, weightPerUnit)
	changeInWeight := forecast - baseline
	if changeInWeight <= 0 {
		return 0
	}
	return -changeInWeight * material.MTCO2ePerLb
}

// materialUse is one weighted material of a line item.
type materialUse struct {
	material      reference.Material
	unitsPerCase  float64
	weightPerUnit float64
}

// lineMaterials resolves the primary, secondary and shipping-box materials of
// a line item. The box is one corrugated carton per case.
func lineMaterials(tables *reference.Tables, li SingleUseLineItemPopulated) ([]materialUse, error) {
	primary, err := tables.Material(li.Product.PrimaryMaterial)
	if err != nil {
		return nil, fmt.Errorf("primary material: %w", err)
	}
	secondary, err := tables.Material(li.Product.secondaryMaterial())
	if err != nil {
		return nil, fmt.Errorf("secondary material: %w", err)
	}
	box, err := tables.Material(reference.MaterialCorrugatedCardboard)
	if err != nil {
		return nil, fmt.Errorf("shipping box material: %w", err)
	}

	upc := li.unitsPerCase()
	return []materialUse{
		{primary, upc, li.Product.PrimaryMaterialWeightPerUnit},
		{secondary, upc, li.Product.SecondaryMaterialWeightPerUnit},
		{box, 1, li.Product.BoxWeight},
	}, nil
}

// GetAnnualGasEmissionChanges sums the avoided landfill emissions of every
// line item and adds the avoided dishwasher emissions. Both terms are
// positive when emissions go down, so Total reads the same way.
func GetAnnualGasEmissionChanges(
	tables *reference.Tables,
	items []SingleUseLineItemPopulated,
	dishwasher DishwasherResults,
) (AnnualGasEmissionChanges, error) {
	var landfill float64
	for i, li := range items {
		occ, err := tables.AnnualOccurrence(li.Frequency)
		if err != nil {
			return AnnualGasEmissionChanges{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		uses, err := lineMaterials(tables, li)
		if err != nil {
			return AnnualGasEmissionChanges{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		for _, u := range uses {
			landfill += CalculateMaterialGHGReduction(
				li.CasesPurchased, li.NewCasesPurchased, occ, u.unitsPerCase, u.material, u.weightPerUnit)
		}
	}

	dishwashing := dishwasher.AvoidedCO2()
	return AnnualGasEmissionChanges{
		LandfillWaste: landfill,
		Dishwashing:   dishwashing,
		Total:         landfill + dishwashing,
	}, nil
}

// GetAnnualWasteChanges compares the baseline and forecast weight of
// disposable products and their shipping boxes, in pounds.
func GetAnnualWasteChanges(
	tables *reference.Tables,
	items []SingleUseLineItemPopulated,
) (AnnualWasteChanges, error) {
	var product, newProduct, box, newBox float64
	for i, li := range items {
		occ, err := tables.AnnualOccurrence(li.Frequency)
		if err != nil {
			return AnnualWasteChanges{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		upc := li.unitsPerCase()
		product += AnnualWeight(li.CasesPurchased, occ, upc, li.Product.ItemWeight)
		newProduct += AnnualWeight(li.NewCasesPurchased, occ, upc, li.Product.ItemWeight)
		box += li.CasesPurchased * li.Product.BoxWeight * occ
		newBox += li.NewCasesPurchased * li.Product.BoxWeight * occ
	}

	return AnnualWasteChanges{
		DisposableProductWeight:     GetChangeSummaryRow(product, newProduct),
		DisposableShippingBoxWeight: GetChangeSummaryRow(box, newBox),
		Total:                       GetChangeSummaryRow(product+box, newProduct+newBox),
	}, nil
}

// GetAnnualWaterUsageChanges compares the water footprint of the disposable
// materials with the dishwasher's water use, in gallons.
func GetAnnualWaterUsageChanges(
	tables *reference.Tables,
	items []SingleUseLineItemPopulated,
	dishwasher DishwasherResults,
) (AnnualWaterUsageChanges, error) {
	var baseline, forecast float64
	for i, li := range items {
		occ, err := tables.AnnualOccurrence(li.Frequency)
		if err != nil {
			return AnnualWaterUsageChanges{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		uses, err := lineMaterials(tables, li)
		if err != nil {
			return AnnualWaterUsageChanges{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		for _, u := range uses {
			gal := u.material.WaterUsageGalPerLb
			baseline += AnnualWeight(li.CasesPurchased, occ, u.unitsPerCase, u.weightPerUnit) * gal
			forecast += AnnualWeight(li.NewCasesPurchased, occ, u.unitsPerCase, u.weightPerUnit) * gal
		}
	}

	dish := GetChangeSummaryRow(dishwasher.Baseline.WaterUsage, dishwasher.Forecast.WaterUsage)
	return AnnualWaterUsageChanges{
		DisposableProducts: GetChangeSummaryRow(baseline, forecast),
		Dishwashing:        dish,
		Total: GetChangeSummaryRow(
			baseline+dishwasher.Baseline.WaterUsage,
			forecast+dishwasher.Forecast.WaterUsage,
		),
	}, nil
}

// GetEnvironmentalResults assembles the emissions, waste and water results.
func GetEnvironmentalResults(
	tables *reference.Tables,
	items []SingleUseLineItemPopulated,
	dishwasher DishwasherResults,
) (EnvironmentalResults, error) {
	gas, err := GetAnnualGasEmissionChanges(tables, items, dishwasher)
	if err != nil {
		return EnvironmentalResults{}, err
	}
	waste, err := GetAnnualWasteChanges(tables, items)
	if err != nil {
		return EnvironmentalResults{}, err
	}
	water, err := GetAnnualWaterUsageChanges(tables, items, dishwasher)
	if err != nil {
		return EnvironmentalResults{}, err
	}
	return EnvironmentalResults{
		AnnualGasEmissionChanges: gas,
		AnnualWasteChanges:       waste,
		AnnualWaterUsageChanges:  water,
	}, nil
}

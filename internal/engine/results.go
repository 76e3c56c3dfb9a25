package engine

import (
	"fmt"
	"math"
	"reflect"
)

// Projections is the complete report for one project. Its JSON form has
// exactly four top-level keys.
type Projections struct {
	AnnualSummary           AnnualSummary           `json:"annualSummary"`
	EnvironmentalResults    EnvironmentalResults    `json:"environmentalResults"`
	FinancialResults        FinancialResults        `json:"financialResults"`
	SingleUseProductResults SingleUseProductResults `json:"singleUseProductResults"`
}

// AnnualSummary pulls one headline number from each engine.
type AnnualSummary struct {
	// DollarCost is the net annual cost change; negative means savings.
	DollarCost float64 `json:"dollarCost"`
	// SingleUseProductCount is the change in annual single-use units.
	SingleUseProductCount float64 `json:"singleUseProductCount"`
	// GreenhouseGasEmissions is the annual emissions change in MTCO2e.
	GreenhouseGasEmissions float64 `json:"greenhouseGasEmissions"`
	// WasteWeight is the change in annual disposable waste, in pounds.
	WasteWeight float64 `json:"wasteWeight"`
}

// EnvironmentalResults groups the emissions, waste and water results.
type EnvironmentalResults struct {
	AnnualGasEmissionChanges AnnualGasEmissionChanges `json:"annualGasEmissionChanges"`
	AnnualWasteChanges       AnnualWasteChanges       `json:"annualWasteChanges"`
	AnnualWaterUsageChanges  AnnualWaterUsageChanges  `json:"annualWaterUsageChanges"`
}

// AnnualGasEmissionChanges are emissions changes in MTCO2e.
type AnnualGasEmissionChanges struct {
	LandfillWaste float64 `json:"landfillWaste"`
	Dishwashing   float64 `json:"dishwashing"`
	Total         float64 `json:"total"`
}

// AnnualWasteChanges are disposable waste weights in pounds.
type AnnualWasteChanges struct {
	DisposableProductWeight     ChangeSummary `json:"disposableProductWeight"`
	DisposableShippingBoxWeight ChangeSummary `json:"disposableShippingBoxWeight"`
	Total                       ChangeSummary `json:"total"`
}

// AnnualWaterUsageChanges are water volumes in gallons.
type AnnualWaterUsageChanges struct {
	DisposableProducts ChangeSummary `json:"disposableProducts"`
	Dishwashing        ChangeSummary `json:"dishwashing"`
	Total              ChangeSummary `json:"total"`
}

// FinancialResults groups one-time costs, recurring cost changes and the
// payback summary.
type FinancialResults struct {
	OneTimeCosts      OneTimeCosts      `json:"oneTimeCosts"`
	AnnualCostChanges AnnualCostChanges `json:"annualCostChanges"`
	Summary           FinancialSummary  `json:"summary"`
	UtilityDetails    DishwasherResults `json:"utilityDetails"`
}

// OneTimeCosts are the up-front program costs.
type OneTimeCosts struct {
	ReusableProductCosts float64 `json:"reusableProductCosts"`
	AdditionalCosts      float64 `json:"additionalCosts"`
	Total                float64 `json:"total"`
}

// AnnualCostChanges are recurring annual cost deltas; negative values are
// savings.
type AnnualCostChanges struct {
	AdditionalCosts        float64 `json:"additionalCosts"`
	ReusableProductCosts   float64 `json:"reusableProductCosts"`
	SingleUseProductChange float64 `json:"singleUseProductChange"`
	Utilities              float64 `json:"utilities"`
	WasteHauling           float64 `json:"wasteHauling"`
	Total                  float64 `json:"total"`
}

// FinancialSummary is the payback view. PaybackPeriodsMonths and
// AnnualROIPercent are nil (JSON null) when the program does not save money.
type FinancialSummary struct {
	OneTimeCost          float64  `json:"oneTimeCost"`
	AnnualCost           float64  `json:"annualCost"`
	PaybackPeriodsMonths *float64 `json:"paybackPeriodsMonths"`
	AnnualROIPercent     *float64 `json:"annualROIPercent"`
}

// IsSavings reports whether the program nets annual savings.
func (s FinancialSummary) IsSavings() bool {
	return s.AnnualCost < 0
}

// SingleUseProductResults are the purchasing results.
type SingleUseProductResults struct {
	Summary       SingleUseSummary `json:"summary"`
	ResultsByType ResultsByType    `json:"resultsByType"`
}

// SingleUseSummary compares baseline and forecast purchasing.
type SingleUseSummary struct {
	AnnualCost   ChangeSummary `json:"annualCost"`
	AnnualUnits  ChangeSummary `json:"annualUnits"`
	ProductCount ChangeSummary `json:"productCount"`
}

// ResultsByType holds the purchasing breakdown tables.
type ResultsByType struct {
	Material        BreakdownTable `json:"material"`
	ProductCategory BreakdownTable `json:"productCategory"`
	ProductType     BreakdownTable `json:"productType"`
}

// BreakdownTable is one breakdown, rows in reference-table order.
type BreakdownTable struct {
	Rows []BreakdownRow `json:"rows"`
}

// BreakdownRow is the purchasing comparison for one reference value.
type BreakdownRow struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	AnnualCost   ChangeSummary `json:"annualCost"`
	AnnualUnits  ChangeSummary `json:"annualUnits"`
	ProductCount ChangeSummary `json:"productCount"`
}

// Validate reports ErrNonFiniteResult when any number in the report is NaN
// or infinite.
func (p *Projections) Validate() error {
	return checkFinite(reflect.ValueOf(p), "projections")
}

// checkFinite walks structs, pointers and slices looking for non-finite
// floats.
func checkFinite(v reflect.Value, path string) error {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return checkFinite(v.Elem(), path)
	case reflect.Struct:
		t := v.Type()
		for i := range v.NumField() {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := checkFinite(v.Field(i), path+"."+t.Field(i).Name); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if err := checkFinite(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %s = %v", ErrNonFiniteResult, path, f)
		}
	default:
	}
	return nil
}

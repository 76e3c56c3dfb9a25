package greenops

import (
	"fmt"
	"math"

	"github.com/rshade/reusecalc/internal/units"
)

type factor struct {
	kind    EquivalencyType
	divisor float64
	label   string
}

//nolint:gochecknoglobals // Fixed lookup table.
var factors = []factor{
	{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven"},
	{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
	{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity"},
}

// Calculate normalizes input to kilograms and computes every EPA
// equivalency for it. Quantities below MinEquivalencyThresholdKg yield an
// empty output with InputKg set and no error.
//
// Example:
//
//	output, err := Calculate(CarbonInput{Value: 0.15, Unit: "mt"})
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]EquivalencyResult, 0, len(factors))
	for _, f := range factors {
		v := kg / f.divisor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           f.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          f.label,
		})
	}

	miles, phones := results[0].FormattedValue, results[1].FormattedValue
	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones", miles, phones),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones)", miles, phones),
	}, nil
}

// DescribeChange explains a signed annual emissions change in MTCO2e.
// Equivalencies are computed for the magnitude; Reduction reports the
// direction. Project reports carry avoided emissions as positive values, so
// a positive change is a reduction.
func DescribeChange(mtco2e float64) (EmissionsChange, error) {
	out, err := Calculate(CarbonInput{Value: math.Abs(mtco2e), Unit: "mt"})
	if err != nil {
		return EmissionsChange{}, err
	}

	change := EmissionsChange{
		MTCO2e:      mtco2e,
		Reduction:   mtco2e > 0,
		Equivalency: out,
	}
	amount := units.FormatNumber(math.Abs(mtco2e), 2)
	switch {
	case out.IsEmpty:
		change.Headline = fmt.Sprintf("%s MTCO2e change", amount)
	case change.Reduction:
		change.Headline = fmt.Sprintf("%s MTCO2e avoided per year. %s", amount, out.DisplayText)
	default:
		change.Headline = fmt.Sprintf("%s MTCO2e added per year. %s", amount, out.DisplayText)
	}
	return change, nil
}

// formatEquivalencyValue rounds to a whole count below a million and
// abbreviates above.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return units.FormatNumber(math.Round(v), 0)
}

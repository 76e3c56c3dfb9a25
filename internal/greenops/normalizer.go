package greenops

import (
	"math"
	"strings"
)

// unitFactor returns the kilogram conversion factor for a unit,
// case-insensitively. The report engines work in metric tonnes ("mt").
func unitFactor(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gco2e":
		return GramsToKg, true
	case "kg", "kgco2e":
		return KgToKg, true
	case "t", "tco2e", "mt", "mtco2e":
		return MetricTonsToKg, true
	case "lb", "lbs", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a non-negative carbon quantity to kilograms.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsRecognizedUnit reports whether unit is a supported carbon unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}

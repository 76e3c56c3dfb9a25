// Package greenops turns greenhouse-gas quantities into relatable real-world
// equivalencies ("miles driven", "smartphones charged") using EPA-published
// conversion factors. Reports use it to explain an emissions change in
// MTCO2e to a foodservice operator.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings converts CO2e to tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays converts CO2e to days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// CarbonInput is a quantity of CO2e in a named unit.
type CarbonInput struct {
	Value float64 `json:"value"`

	// Unit is one of g, kg, lb, t, mt and their CO2e variants.
	Unit string `json:"unit"`
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formattedValue"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds the equivalencies for one carbon quantity.
type EquivalencyOutput struct {
	// InputKg is the normalized input in kilograms CO2e.
	InputKg float64 `json:"inputKg"`

	// Results are in display priority order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form used under report tables.
	// Example: "Equivalent to driving ~781 miles or charging ~18,248 smartphones"
	DisplayText string `json:"displayText"`

	// CompactText is the abbreviated form for table cells.
	// Example: "(≈ 781 mi, 18,248 phones)"
	CompactText string `json:"compactText"`

	IsEmpty bool `json:"isEmpty"`
}

// EmissionsChange describes an annual emissions change in MTCO2e with
// equivalencies for its magnitude.
type EmissionsChange struct {
	MTCO2e      float64           `json:"mtco2e"`
	Reduction   bool              `json:"reduction"`
	Equivalency EquivalencyOutput `json:"equivalency"`
	Headline    string            `json:"headline"`
}

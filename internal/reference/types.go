// Package reference holds the static lookup data used by the calculation
// engines: EPA WARM material factors, purchase frequencies, product
// taxonomies, dishwasher specifications, default utility rates and emission
// constants.
//
// Tables are parsed once from a versioned YAML factor library and are
// immutable afterwards, so a single *Tables may be shared by any number of
// concurrent calculations.
package reference

// MaterialID identifies an EPA WARM material row.
type MaterialID string

// Well-known material IDs the engines depend on.
const (
	// MaterialNone is the inert material used when a product has no secondary
	// material. It has zero emission and water factors.
	MaterialNone MaterialID = "none"

	// MaterialCorrugatedCardboard is the shipping-carton material.
	MaterialCorrugatedCardboard MaterialID = "corrugated-cardboard"
)

// Frequency is a purchase or cost recurrence.
type Frequency string

// Canonical frequencies.
const (
	FrequencyDaily    Frequency = "Daily"
	FrequencyWeekly   Frequency = "Weekly"
	FrequencyMonthly  Frequency = "Monthly"
	FrequencyAnnually Frequency = "Annually"
	FrequencyOneTime  Frequency = "One Time"
)

// canonicalOccurrences are the only valid annual occurrence multipliers.
//
//nolint:gochecknoglobals // Fixed lookup table.
var canonicalOccurrences = map[Frequency]float64{
	FrequencyDaily:    365,
	FrequencyWeekly:   52,
	FrequencyMonthly:  12,
	FrequencyAnnually: 1,
}

// IsOneTime reports whether f is the non-recurring "One Time" frequency.
func (f Frequency) IsOneTime() bool {
	return f == FrequencyOneTime
}

// CategoryID identifies a single-use product category.
type CategoryID string

// ProductTypeID identifies a single-use product type.
type ProductTypeID string

// Temperature is a dishwasher sanitizing temperature class.
type Temperature string

// Dishwasher temperature classes.
const (
	TemperatureHigh Temperature = "High"
	TemperatureLow  Temperature = "Low"
)

// FuelType is a water heater fuel.
type FuelType string

// Water heater fuel types.
const (
	FuelElectric FuelType = "Electric"
	FuelGas      FuelType = "Gas"
	FuelNone     FuelType = "None"
)

// Material is an EPA WARM reference row. MTCO2ePerLb is always <= 0: the
// factor is the emissions avoided per pound of material not purchased.
type Material struct {
	ID                 MaterialID `yaml:"id"                     json:"id"`
	Name               string     `yaml:"name"                   json:"name"`
	MTCO2ePerLb        float64    `yaml:"mtco2e_per_lb"          json:"mtco2ePerLb"`
	WaterUsageGalPerLb float64    `yaml:"water_usage_gal_per_lb" json:"waterUsageGalPerLb,omitempty"`
}

// FrequencyFactor maps a frequency to its purchases-per-year multiplier.
type FrequencyFactor struct {
	Name             Frequency `yaml:"name"              json:"name"`
	AnnualOccurrence float64   `yaml:"annual_occurrence" json:"annualOccurrence"`
}

// ProductCategory is a single-use product category.
type ProductCategory struct {
	ID   CategoryID `yaml:"id"   json:"id"`
	Name string     `yaml:"name" json:"name"`
}

// ProductType is a single-use product type within a category.
type ProductType struct {
	ID         ProductTypeID `yaml:"id"       json:"id"`
	Name       string        `yaml:"name"     json:"name"`
	CategoryID CategoryID    `yaml:"category" json:"category"`
}

// DishwasherSpec is the per-rack resource consumption of one dishwasher
// configuration.
type DishwasherSpec struct {
	Type                string      `yaml:"type"                   json:"type"`
	Temperature         Temperature `yaml:"temperature"            json:"temperature"`
	EnergyStarCertified bool        `yaml:"energy_star"            json:"energyStarCertified"`
	WaterGallonsPerRack float64     `yaml:"water_gallons_per_rack" json:"waterGallonsPerRack"`
	ElectricKWhPerRack  float64     `yaml:"electric_kwh_per_rack"  json:"electricKWhPerRack"`
}

// UtilityRates are unit prices for the three metered utilities.
type UtilityRates struct {
	Gas      float64 `yaml:"gas"      json:"gas"`      // $/therm
	Electric float64 `yaml:"electric" json:"electric"` // $/kWh
	Water    float64 `yaml:"water"    json:"water"`    // $/gallon
}

// StateRates are the default utility rates for one state.
type StateRates struct {
	Code  string       `yaml:"code"  json:"code"`
	Name  string       `yaml:"name"  json:"name"`
	Rates UtilityRates `yaml:"rates" json:"rates"`
}

// EmissionFactors are the fuel emission constants.
type EmissionFactors struct {
	// ElectricCO2EmissionsFactor is lbs CO2 per kWh.
	ElectricCO2EmissionsFactor float64 `yaml:"electric_co2_lbs_per_kwh"      json:"electricCO2EmissionsFactor"`
	// NaturalGasCO2EmissionsFactor is lbs CO2 per therm.
	NaturalGasCO2EmissionsFactor float64 `yaml:"natural_gas_co2_lbs_per_therm" json:"naturalGasCO2EmissionsFactor"`
	// PoundToTonne converts pounds to metric tonnes.
	PoundToTonne float64 `yaml:"pound_to_tonne" json:"poundToTonne"`
}

// WaterHeating holds the constants used to turn dishwasher water volume into
// heating energy.
type WaterHeating struct {
	InletTemperatureF    float64 `yaml:"inlet_temperature_f"    json:"inletTemperatureF"`
	BuildingTemperatureF float64 `yaml:"building_temperature_f" json:"buildingTemperatureF"`
	BoosterTemperatureF  float64 `yaml:"booster_temperature_f"  json:"boosterTemperatureF"`
	WaterLbsPerGallon    float64 `yaml:"water_lbs_per_gallon"   json:"waterLbsPerGallon"`
	BTUPerKWh            float64 `yaml:"btu_per_kwh"            json:"btuPerKWh"`
	BTUPerTherm          float64 `yaml:"btu_per_therm"          json:"btuPerTherm"`
	ElectricEfficiency   float64 `yaml:"electric_efficiency"    json:"electricEfficiency"`
	GasEfficiency        float64 `yaml:"gas_efficiency"         json:"gasEfficiency"`
}

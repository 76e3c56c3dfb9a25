package engine

import (
	"fmt"

	"github.com/rshade/reusecalc/internal/reference"
	"github.com/rshade/reusecalc/internal/units"
)

// weeksPerYear converts weekly operating days into annual wash days.
const weeksPerYear = 52

// DishwasherUsage is the annual resource use and cost of one dishwasher
// scenario.
type DishwasherUsage struct {
	RacksPerYear  float64 `json:"racksPerYear"`
	ElectricUsage float64 `json:"electricUsage"` // kWh
	ElectricCost  float64 `json:"electricCost"`
	GasUsage      float64 `json:"gasUsage"` // therms
	GasCost       float64 `json:"gasCost"`
	WaterUsage    float64 `json:"waterUsage"` // gallons
	WaterCost     float64 `json:"waterCost"`
	CO2Weight     float64 `json:"co2Weight"` // metric tonnes
	TotalCost     float64 `json:"totalCost"`
}

// DishwasherResults holds the baseline and forecast dishwasher usage. Both
// are zero when the project has no dishwasher.
type DishwasherResults struct {
	Baseline DishwasherUsage `json:"baseline"`
	Forecast DishwasherUsage `json:"forecast"`
}

// CostChange is the forecast minus baseline dishwasher cost.
func (r DishwasherResults) CostChange() float64 {
	return units.SumMoney(r.Forecast.TotalCost, -r.Baseline.TotalCost)
}

// AvoidedCO2 is the baseline minus forecast dishwasher emissions in tonnes.
// Extra wash loads make it negative.
func (r DishwasherResults) AvoidedCO2() float64 {
	return r.Baseline.CO2Weight - r.Forecast.CO2Weight
}

// GetDishwasherUsage computes annual electric, gas and water use for the
// baseline and forecast dishwasher loads. A nil dishwasher yields all zeros.
func GetDishwasherUsage(
	tables *reference.Tables,
	dw *DishWasher,
	rates reference.UtilityRates,
) (DishwasherResults, error) {
	if dw == nil {
		return DishwasherResults{}, nil
	}

	spec, err := tables.Dishwasher(dw.Type, dw.Temperature, dw.EnergyStarCertified)
	if err != nil {
		return DishwasherResults{}, fmt.Errorf("dishwasher usage: %w", err)
	}

	m := dishwasherModel{
		spec:      spec,
		heating:   tables.WaterHeating(),
		emissions: tables.Emissions(),
		rates:     rates,
		booster:   fuelOrNone(dw.BoosterWaterHeaterFuelType),
		building:  fuelOrNone(dw.BuildingWaterHeaterFuelType),
	}

	baselineRacks := dw.RacksPerDay * dw.OperatingDays * weeksPerYear
	forecastRacks := (dw.RacksPerDay + dw.AdditionalRacksPerDay) * dw.forecastOperatingDays() * weeksPerYear

	return DishwasherResults{
		Baseline: m.usage(baselineRacks),
		Forecast: m.usage(forecastRacks),
	}, nil
}

type dishwasherModel struct {
	spec      reference.DishwasherSpec
	heating   reference.WaterHeating
	emissions reference.EmissionFactors
	rates     reference.UtilityRates
	booster   reference.FuelType
	building  reference.FuelType
}

func (m dishwasherModel) usage(racksPerYear float64) DishwasherUsage {
	u := DishwasherUsage{RacksPerYear: racksPerYear}
	u.WaterUsage = racksPerYear * m.spec.WaterGallonsPerRack
	u.ElectricUsage = racksPerYear * m.spec.ElectricKWhPerRack

	m.addHeating(&u, m.building, m.heating.BuildingTemperatureF-m.heating.InletTemperatureF)
	if m.spec.Temperature == reference.TemperatureHigh {
		m.addHeating(&u, m.booster, m.heating.BoosterTemperatureF-m.heating.BuildingTemperatureF)
	}

	u.ElectricCost = units.MulMoney(u.ElectricUsage, m.rates.Electric)
	u.GasCost = units.MulMoney(u.GasUsage, m.rates.Gas)
	u.WaterCost = units.MulMoney(u.WaterUsage, m.rates.Water)
	u.TotalCost = units.SumMoney(u.ElectricCost, u.GasCost, u.WaterCost)

	co2Lbs := u.ElectricUsage*m.emissions.ElectricCO2EmissionsFactor +
		u.GasUsage*m.emissions.NaturalGasCO2EmissionsFactor
	u.CO2Weight = co2Lbs * m.emissions.PoundToTonne
	return u
}

// addHeating adds the energy needed to raise the rack water by deltaF
// degrees with the given heater fuel.
func (m dishwasherModel) addHeating(u *DishwasherUsage, fuel reference.FuelType, deltaF float64) {
	if deltaF <= 0 {
		return
	}
	btu := u.WaterUsage * m.heating.WaterLbsPerGallon * deltaF
	switch fuel {
	case reference.FuelElectric:
		u.ElectricUsage += btu / m.heating.BTUPerKWh / m.heating.ElectricEfficiency
	case reference.FuelGas:
		u.GasUsage += btu / m.heating.BTUPerTherm / m.heating.GasEfficiency
	case reference.FuelNone:
	}
}

func fuelOrNone(f reference.FuelType) reference.FuelType {
	if f == "" {
		return reference.FuelNone
	}
	return f
}

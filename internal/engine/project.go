package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/rshade/reusecalc/internal/reference"
)

// Engine error types. Reference lookup failures are reported with
// reference.ErrNotFound and propagate unchanged.
var (
	// ErrInvalidInput indicates a ProjectInput value outside its allowed range.
	ErrInvalidInput = errors.New("invalid project input")

	// ErrNonFiniteResult indicates a NaN or infinite number in a computed report.
	ErrNonFiniteResult = errors.New("non-finite result")
)

// Dishwasher operating day limits.
const (
	minOperatingDays = 1
	maxOperatingDays = 7
	maxPercentage    = 100.0
)

// ProjectInput is the fully resolved snapshot of one project consumed by the
// calculator. Every single-use line item carries its catalog product; the
// engines never look products up by ID.
type ProjectInput struct {
	ID              string                       `json:"id,omitempty"`
	Name            string                       `json:"name,omitempty"`
	State           string                       `json:"state"`
	Currency        string                       `json:"currency,omitempty"`
	UtilityRates    reference.UtilityRates       `json:"utilityRates"`
	Dishwasher      *DishWasher                  `json:"dishwasher,omitempty"`
	SingleUseItems  []SingleUseLineItemPopulated `json:"singleUseItems"`
	ReusableItems   []ReusableLineItem           `json:"reusableItems"`
	AdditionalCosts []AdditionalCost             `json:"additionalCosts"`
	WasteHauling    []WasteHaulingService        `json:"wasteHauling"`
	NewWasteHauling []WasteHaulingService        `json:"newWasteHauling"`
}

// SingleUseLineItemPopulated is one recurring disposable purchase pattern.
// CasesPurchased/CaseCost describe the baseline; the New* fields describe the
// forecast.
type SingleUseLineItemPopulated struct {
	ProductID         string              `json:"productId,omitempty"`
	CaseCost          float64             `json:"caseCost"`
	CasesPurchased    float64             `json:"casesPurchased"`
	Frequency         reference.Frequency `json:"frequency"`
	NewCaseCost       float64             `json:"newCaseCost"`
	NewCasesPurchased float64             `json:"newCasesPurchased"`
	UnitsPerCase      float64             `json:"unitsPerCase"`
	Product           SingleUseProduct    `json:"product"`
}

// unitsPerCase returns the line item's units per case, falling back to the
// catalog value when the line item leaves it unset.
func (li SingleUseLineItemPopulated) unitsPerCase() float64 {
	if li.UnitsPerCase > 0 {
		return li.UnitsPerCase
	}
	return li.Product.UnitsPerCase
}

// SingleUseProduct is a catalog entry. Weights are pounds.
type SingleUseProduct struct {
	ID                             string                  `json:"id,omitempty"`
	Description                    string                  `json:"description,omitempty"`
	Category                       reference.CategoryID    `json:"category"`
	Type                           reference.ProductTypeID `json:"type"`
	UnitsPerCase                   float64                 `json:"unitsPerCase"`
	BoxWeight                      float64                 `json:"boxWeight"`
	ItemWeight                     float64                 `json:"itemWeight"`
	PrimaryMaterial                reference.MaterialID    `json:"primaryMaterial"`
	PrimaryMaterialWeightPerUnit   float64                 `json:"primaryMaterialWeightPerUnit"`
	SecondaryMaterial              reference.MaterialID    `json:"secondaryMaterial,omitempty"`
	SecondaryMaterialWeightPerUnit float64                 `json:"secondaryMaterialWeightPerUnit,omitempty"`
}

// secondaryMaterial returns the secondary material, or the inert material
// when none is set.
func (p SingleUseProduct) secondaryMaterial() reference.MaterialID {
	if p.SecondaryMaterial == "" {
		return reference.MaterialNone
	}
	return p.SecondaryMaterial
}

// ReusableLineItem is a one-time purchase of a reusable replacement product.
type ReusableLineItem struct {
	ProductName                string  `json:"productName,omitempty"`
	CaseCost                   float64 `json:"caseCost"`
	CasesPurchased             float64 `json:"casesPurchased"`
	AnnualRepurchasePercentage float64 `json:"annualRepurchasePercentage"`
}

// AdditionalCost is a one-time or recurring cost of running the program.
type AdditionalCost struct {
	Cost      float64             `json:"cost"`
	Frequency reference.Frequency `json:"frequency"`
	Category  string              `json:"category"`
}

// DishWasher describes the project's dish machine. RacksPerDay is the
// baseline load; the forecast washes RacksPerDay+AdditionalRacksPerDay racks
// on NewOperatingDays days a week (OperatingDays when zero).
type DishWasher struct {
	Type                        string                `json:"type"`
	Temperature                 reference.Temperature `json:"temperature"`
	EnergyStarCertified         bool                  `json:"energyStarCertified"`
	OperatingDays               float64               `json:"operatingDays"`
	NewOperatingDays            float64               `json:"newOperatingDays,omitempty"`
	RacksPerDay                 float64               `json:"racksPerDay"`
	AdditionalRacksPerDay       float64               `json:"additionalRacksPerDay"`
	BoosterWaterHeaterFuelType  reference.FuelType    `json:"boosterWaterHeaterFuelType"`
	BuildingWaterHeaterFuelType reference.FuelType    `json:"buildingWaterHeaterFuelType"`
}

// forecastOperatingDays returns the operating days used for the forecast.
func (d DishWasher) forecastOperatingDays() float64 {
	if d.NewOperatingDays > 0 {
		return d.NewOperatingDays
	}
	return d.OperatingDays
}

// WasteHaulingService is one waste-hauling contract line.
type WasteHaulingService struct {
	WasteStream            string  `json:"wasteStream"`
	ServiceType            string  `json:"serviceType,omitempty"`
	CollectionTimesPerWeek float64 `json:"collectionTimesPerWeek,omitempty"`
	Size                   float64 `json:"size,omitempty"`
	UnitCount              float64 `json:"unitCount,omitempty"`
	MonthlyCost            float64 `json:"monthlyCost"`
}

// Validate checks value ranges and the enumerated fields that do not take
// part in any formula. Range problems wrap ErrInvalidInput; unknown
// reference names wrap reference.ErrNotFound.
func (p ProjectInput) Validate(tables *reference.Tables) error {
	for i, li := range p.SingleUseItems {
		if err := nonNegative(
			field{"caseCost", li.CaseCost},
			field{"casesPurchased", li.CasesPurchased},
			field{"newCaseCost", li.NewCaseCost},
			field{"newCasesPurchased", li.NewCasesPurchased},
			field{"unitsPerCase", li.UnitsPerCase},
			field{"product.boxWeight", li.Product.BoxWeight},
			field{"product.itemWeight", li.Product.ItemWeight},
			field{"product.primaryMaterialWeightPerUnit", li.Product.PrimaryMaterialWeightPerUnit},
			field{"product.secondaryMaterialWeightPerUnit", li.Product.SecondaryMaterialWeightPerUnit},
		); err != nil {
			return fmt.Errorf("single-use item %d: %w", i, err)
		}
		if li.Frequency.IsOneTime() {
			return fmt.Errorf("%w: single-use item %d: purchases must recur", ErrInvalidInput, i)
		}
	}

	for i, r := range p.ReusableItems {
		if err := nonNegative(
			field{"caseCost", r.CaseCost},
			field{"casesPurchased", r.CasesPurchased},
			field{"annualRepurchasePercentage", r.AnnualRepurchasePercentage},
		); err != nil {
			return fmt.Errorf("reusable item %d: %w", i, err)
		}
		if r.AnnualRepurchasePercentage > maxPercentage {
			return fmt.Errorf("%w: reusable item %d: annualRepurchasePercentage must be between 0 and 100, got %v",
				ErrInvalidInput, i, r.AnnualRepurchasePercentage)
		}
	}

	for i, c := range p.AdditionalCosts {
		if err := nonNegative(field{"cost", c.Cost}); err != nil {
			return fmt.Errorf("additional cost %d: %w", i, err)
		}
		if _, err := tables.AdditionalCostCategory(c.Category); err != nil {
			return fmt.Errorf("additional cost %d: %w", i, err)
		}
	}

	for _, list := range []struct {
		name     string
		services []WasteHaulingService
	}{{"waste hauling", p.WasteHauling}, {"new waste hauling", p.NewWasteHauling}} {
		for i, s := range list.services {
			if err := nonNegative(field{"monthlyCost", s.MonthlyCost}); err != nil {
				return fmt.Errorf("%s service %d: %w", list.name, i, err)
			}
			if _, err := tables.WasteStream(s.WasteStream); err != nil {
				return fmt.Errorf("%s service %d: %w", list.name, i, err)
			}
		}
	}

	if err := nonNegative(
		field{"utilityRates.gas", p.UtilityRates.Gas},
		field{"utilityRates.electric", p.UtilityRates.Electric},
		field{"utilityRates.water", p.UtilityRates.Water},
	); err != nil {
		return err
	}

	if p.Dishwasher != nil {
		if err := p.Dishwasher.validate(); err != nil {
			return fmt.Errorf("dishwasher: %w", err)
		}
	}
	return nil
}

func (d DishWasher) validate() error {
	if d.OperatingDays < minOperatingDays || d.OperatingDays > maxOperatingDays {
		return fmt.Errorf("%w: operatingDays must be between 1 and 7, got %v", ErrInvalidInput, d.OperatingDays)
	}
	if d.NewOperatingDays < 0 || d.NewOperatingDays > maxOperatingDays {
		return fmt.Errorf("%w: newOperatingDays must be between 0 and 7, got %v", ErrInvalidInput, d.NewOperatingDays)
	}
	if err := nonNegative(
		field{"racksPerDay", d.RacksPerDay},
		field{"additionalRacksPerDay", d.AdditionalRacksPerDay},
	); err != nil {
		return err
	}
	if d.Temperature != reference.TemperatureHigh && d.Temperature != reference.TemperatureLow {
		return fmt.Errorf("%w: temperature must be High or Low, got %q", ErrInvalidInput, d.Temperature)
	}
	for _, fuel := range []reference.FuelType{d.BoosterWaterHeaterFuelType, d.BuildingWaterHeaterFuelType} {
		switch fuel {
		case reference.FuelElectric, reference.FuelGas, reference.FuelNone, "":
		default:
			return fmt.Errorf("%w: unknown water heater fuel type %q", ErrInvalidInput, fuel)
		}
	}
	return nil
}

type field struct {
	name  string
	value float64
}

// nonNegative rejects negative, NaN and infinite values.
func nonNegative(fields ...field) error {
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidInput, f.name, f.value)
		}
	}
	return nil
}

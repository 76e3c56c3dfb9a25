// Package ingest loads project documents from disk and resolves them into
// engine inputs. It is the data-access layer in front of the calculator:
// free-text names from purchasing spreadsheets (categories, materials,
// frequencies) are matched against the reference tables here, and any name
// that does not resolve is a hard error.
package ingest

// Document is one file on disk. It holds either a single project at the top
// level or a list of projects under "projects". A shared product catalog may
// sit next to either form.
type Document struct {
	Products []ProductRecord   `yaml:"products,omitempty"  json:"products,omitempty"`
	Projects []ProjectDocument `yaml:"projects,omitempty"  json:"projects,omitempty"`

	ProjectDocument `yaml:",inline"`
}

// ProjectDocument is a project as written by a user: products are referenced
// by ID and reference values by name.
type ProjectDocument struct {
	ID              string             `yaml:"id,omitempty"              json:"id,omitempty"`
	Name            string             `yaml:"name,omitempty"            json:"name,omitempty"`
	State           string             `yaml:"state,omitempty"           json:"state,omitempty"`
	Currency        string             `yaml:"currency,omitempty"        json:"currency,omitempty"`
	UtilityRates    *UtilityRates      `yaml:"utilityRates,omitempty"    json:"utilityRates,omitempty"`
	Dishwasher      *DishwasherRecord  `yaml:"dishwasher,omitempty"      json:"dishwasher,omitempty"`
	SingleUseItems  []SingleUseRecord  `yaml:"singleUseItems,omitempty"  json:"singleUseItems,omitempty"`
	ReusableItems   []ReusableRecord   `yaml:"reusableItems,omitempty"   json:"reusableItems,omitempty"`
	AdditionalCosts []AdditionalRecord `yaml:"additionalCosts,omitempty" json:"additionalCosts,omitempty"`
	WasteHauling    []HaulingRecord    `yaml:"wasteHauling,omitempty"    json:"wasteHauling,omitempty"`
	NewWasteHauling []HaulingRecord    `yaml:"newWasteHauling,omitempty" json:"newWasteHauling,omitempty"`
}

// UtilityRates are project-entered utility prices. Omitted or zero rates use
// the state default.
type UtilityRates struct {
	Gas      float64 `yaml:"gas"      json:"gas"`
	Electric float64 `yaml:"electric" json:"electric"`
	Water    float64 `yaml:"water"    json:"water"`
}

// ProductRecord is a single-use product catalog entry. Category, type and
// materials accept either reference IDs or display names.
type ProductRecord struct {
	ID                             string  `yaml:"id"                                       json:"id"`
	Description                    string  `yaml:"description,omitempty"                    json:"description,omitempty"`
	Category                       string  `yaml:"category"                                 json:"category"`
	Type                           string  `yaml:"type"                                     json:"type"`
	UnitsPerCase                   float64 `yaml:"unitsPerCase"                             json:"unitsPerCase"`
	BoxWeight                      float64 `yaml:"boxWeight"                                json:"boxWeight"`
	ItemWeight                     float64 `yaml:"itemWeight"                               json:"itemWeight"`
	PrimaryMaterial                string  `yaml:"primaryMaterial"                          json:"primaryMaterial"`
	PrimaryMaterialWeightPerUnit   float64 `yaml:"primaryMaterialWeightPerUnit"             json:"primaryMaterialWeightPerUnit"`
	SecondaryMaterial              string  `yaml:"secondaryMaterial,omitempty"              json:"secondaryMaterial,omitempty"`
	SecondaryMaterialWeightPerUnit float64 `yaml:"secondaryMaterialWeightPerUnit,omitempty" json:"secondaryMaterialWeightPerUnit,omitempty"`
}

// SingleUseRecord is a disposable purchase line referencing a catalog
// product by ID.
type SingleUseRecord struct {
	ProductID         string  `yaml:"productId"              json:"productId"`
	CaseCost          float64 `yaml:"caseCost"               json:"caseCost"`
	CasesPurchased    float64 `yaml:"casesPurchased"         json:"casesPurchased"`
	Frequency         string  `yaml:"frequency"              json:"frequency"`
	NewCaseCost       float64 `yaml:"newCaseCost"            json:"newCaseCost"`
	NewCasesPurchased float64 `yaml:"newCasesPurchased"      json:"newCasesPurchased"`
	UnitsPerCase      float64 `yaml:"unitsPerCase,omitempty" json:"unitsPerCase,omitempty"`
}

// ReusableRecord is a reusable product purchase.
type ReusableRecord struct {
	ProductName                string  `yaml:"productName,omitempty"      json:"productName,omitempty"`
	CaseCost                   float64 `yaml:"caseCost"                   json:"caseCost"`
	CasesPurchased             float64 `yaml:"casesPurchased"             json:"casesPurchased"`
	AnnualRepurchasePercentage float64 `yaml:"annualRepurchasePercentage" json:"annualRepurchasePercentage"`
}

// AdditionalRecord is an additional program cost.
type AdditionalRecord struct {
	Cost      float64 `yaml:"cost"      json:"cost"`
	Frequency string  `yaml:"frequency" json:"frequency"`
	Category  string  `yaml:"category"  json:"category"`
}

// DishwasherRecord is the project's dish machine.
type DishwasherRecord struct {
	Type                        string  `yaml:"type"                        json:"type"`
	Temperature                 string  `yaml:"temperature"                 json:"temperature"`
	EnergyStarCertified         bool    `yaml:"energyStarCertified"         json:"energyStarCertified"`
	OperatingDays               float64 `yaml:"operatingDays"               json:"operatingDays"`
	NewOperatingDays            float64 `yaml:"newOperatingDays,omitempty"  json:"newOperatingDays,omitempty"`
	RacksPerDay                 float64 `yaml:"racksPerDay"                 json:"racksPerDay"`
	AdditionalRacksPerDay       float64 `yaml:"additionalRacksPerDay"       json:"additionalRacksPerDay"`
	BoosterWaterHeaterFuelType  string  `yaml:"boosterWaterHeaterFuelType"  json:"boosterWaterHeaterFuelType"`
	BuildingWaterHeaterFuelType string  `yaml:"buildingWaterHeaterFuelType" json:"buildingWaterHeaterFuelType"`
}

// HaulingRecord is a waste-hauling contract line.
type HaulingRecord struct {
	WasteStream            string  `yaml:"wasteStream"                      json:"wasteStream"`
	ServiceType            string  `yaml:"serviceType,omitempty"            json:"serviceType,omitempty"`
	CollectionTimesPerWeek float64 `yaml:"collectionTimesPerWeek,omitempty" json:"collectionTimesPerWeek,omitempty"`
	Size                   float64 `yaml:"size,omitempty"                   json:"size,omitempty"`
	UnitCount              float64 `yaml:"unitCount,omitempty"              json:"unitCount,omitempty"`
	MonthlyCost            float64 `yaml:"monthlyCost"                      json:"monthlyCost"`
}

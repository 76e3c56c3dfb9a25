package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rshade/reusecalc/internal/engine"
	"github.com/rshade/reusecalc/internal/reference"
)

// Resolve turns every project in doc into a calculator input. Products are
// joined by ID and every reference name is resolved against tables. Projects
// without an ID are assigned a random UUID.
func Resolve(tables *reference.Tables, doc *Document) ([]engine.ProjectInput, error) {
	catalog, err := resolveCatalog(tables, doc.Products)
	if err != nil {
		return nil, err
	}

	docs := doc.ProjectDocuments()
	if len(docs) == 0 {
		return nil, ErrEmptyDocument
	}

	projects := make([]engine.ProjectInput, 0, len(docs))
	for i, pd := range docs {
		p, err := resolveProject(tables, catalog, pd)
		if err != nil {
			label := pd.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("project %s: %w", label, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func resolveCatalog(tables *reference.Tables, records []ProductRecord) (map[string]engine.SingleUseProduct, error) {
	catalog := make(map[string]engine.SingleUseProduct, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("%w: product without id", ErrInvalidValue)
		}
		if _, dup := catalog[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProduct, r.ID)
		}
		p, err := resolveProduct(tables, r)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", r.ID, err)
		}
		catalog[r.ID] = p
	}
	return catalog, nil
}

func resolveProduct(tables *reference.Tables, r ProductRecord) (engine.SingleUseProduct, error) {
	category, err := tables.ProductCategoryByName(r.Category)
	if err != nil {
		return engine.SingleUseProduct{}, err
	}
	productType, err := tables.ProductTypeByName(r.Type)
	if err != nil {
		return engine.SingleUseProduct{}, err
	}
	if productType.CategoryID != category.ID {
		return engine.SingleUseProduct{}, fmt.Errorf("%w: %s is a %s product, not %s",
			ErrCategoryMismatch, productType.Name, productType.CategoryID, category.ID)
	}
	primary, err := tables.MaterialByName(r.PrimaryMaterial)
	if err != nil {
		return engine.SingleUseProduct{}, err
	}
	secondary := reference.MaterialNone
	if strings.TrimSpace(r.SecondaryMaterial) != "" {
		m, err := tables.MaterialByName(r.SecondaryMaterial)
		if err != nil {
			return engine.SingleUseProduct{}, err
		}
		secondary = m.ID
	}

	return engine.SingleUseProduct{
		ID:                             r.ID,
		Description:                    r.Description,
		Category:                       category.ID,
		Type:                           productType.ID,
		UnitsPerCase:                   r.UnitsPerCase,
		BoxWeight:                      r.BoxWeight,
		ItemWeight:                     r.ItemWeight,
		PrimaryMaterial:                primary.ID,
		PrimaryMaterialWeightPerUnit:   r.PrimaryMaterialWeightPerUnit,
		SecondaryMaterial:              secondary,
		SecondaryMaterialWeightPerUnit: r.SecondaryMaterialWeightPerUnit,
	}, nil
}

func resolveProject(
	tables *reference.Tables,
	catalog map[string]engine.SingleUseProduct,
	pd ProjectDocument,
) (engine.ProjectInput, error) {
	p := engine.ProjectInput{
		ID:       pd.ID,
		Name:     pd.Name,
		State:    strings.ToUpper(strings.TrimSpace(pd.State)),
		Currency: pd.Currency,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if pd.UtilityRates != nil {
		p.UtilityRates = reference.UtilityRates(*pd.UtilityRates)
	}

	for i, r := range pd.SingleUseItems {
		product, ok := catalog[r.ProductID]
		if !ok {
			return engine.ProjectInput{}, fmt.Errorf("single-use item %d: %w %q", i, ErrUnknownProduct, r.ProductID)
		}
		freq, err := tables.FrequencyByName(r.Frequency)
		if err != nil {
			return engine.ProjectInput{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		p.SingleUseItems = append(p.SingleUseItems, engine.SingleUseLineItemPopulated{
			ProductID:         r.ProductID,
			CaseCost:          r.CaseCost,
			CasesPurchased:    r.CasesPurchased,
			Frequency:         freq,
			NewCaseCost:       r.NewCaseCost,
			NewCasesPurchased: r.NewCasesPurchased,
			UnitsPerCase:      r.UnitsPerCase,
			Product:           product,
		})
	}

	for _, r := range pd.ReusableItems {
		p.ReusableItems = append(p.ReusableItems, engine.ReusableLineItem(r))
	}

	for i, r := range pd.AdditionalCosts {
		freq, err := tables.FrequencyByName(r.Frequency)
		if err != nil {
			return engine.ProjectInput{}, fmt.Errorf("additional cost %d: %w", i, err)
		}
		category, err := tables.AdditionalCostCategory(r.Category)
		if err != nil {
			return engine.ProjectInput{}, fmt.Errorf("additional cost %d: %w", i, err)
		}
		p.AdditionalCosts = append(p.AdditionalCosts, engine.AdditionalCost{Cost: r.Cost, Frequency: freq, Category: category})
	}

	var err error
	if p.WasteHauling, err = resolveHauling(tables, pd.WasteHauling); err != nil {
		return engine.ProjectInput{}, fmt.Errorf("waste hauling: %w", err)
	}
	if p.NewWasteHauling, err = resolveHauling(tables, pd.NewWasteHauling); err != nil {
		return engine.ProjectInput{}, fmt.Errorf("new waste hauling: %w", err)
	}

	if pd.Dishwasher != nil {
		dw, err := resolveDishwasher(tables, *pd.Dishwasher)
		if err != nil {
			return engine.ProjectInput{}, fmt.Errorf("dishwasher: %w", err)
		}
		p.Dishwasher = dw
	}
	return p, nil
}

func resolveHauling(tables *reference.Tables, records []HaulingRecord) ([]engine.WasteHaulingService, error) {
	var out []engine.WasteHaulingService
	for i, r := range records {
		stream, err := tables.WasteStream(r.WasteStream)
		if err != nil {
			return nil, fmt.Errorf("service %d: %w", i, err)
		}
		s := engine.WasteHaulingService(r)
		s.WasteStream = stream
		out = append(out, s)
	}
	return out, nil
}

func resolveDishwasher(tables *reference.Tables, r DishwasherRecord) (*engine.DishWasher, error) {
	temperature, err := parseTemperature(r.Temperature)
	if err != nil {
		return nil, err
	}
	spec, err := tables.Dishwasher(r.Type, temperature, r.EnergyStarCertified)
	if err != nil {
		return nil, err
	}
	booster, err := parseFuel(r.BoosterWaterHeaterFuelType)
	if err != nil {
		return nil, fmt.Errorf("booster heater: %w", err)
	}
	building, err := parseFuel(r.BuildingWaterHeaterFuelType)
	if err != nil {
		return nil, fmt.Errorf("building heater: %w", err)
	}

	return &engine.DishWasher{
		Type:                        spec.Type,
		Temperature:                 temperature,
		EnergyStarCertified:         r.EnergyStarCertified,
		OperatingDays:               r.OperatingDays,
		NewOperatingDays:            r.NewOperatingDays,
		RacksPerDay:                 r.RacksPerDay,
		AdditionalRacksPerDay:       r.AdditionalRacksPerDay,
		BoosterWaterHeaterFuelType:  booster,
		BuildingWaterHeaterFuelType: building,
	}, nil
}

func parseTemperature(s string) (reference.Temperature, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return reference.TemperatureHigh, nil
	case "low":
		return reference.TemperatureLow, nil
	default:
		return "", fmt.Errorf("%w: temperature %q", ErrInvalidValue, s)
	}
}

func parseFuel(s string) (reference.FuelType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "electric":
		return reference.FuelElectric, nil
	case "gas", "natural gas":
		return reference.FuelGas, nil
	case "none", "":
		return reference.FuelNone, nil
	default:
		return "", fmt.Errorf("%w: fuel type %q", ErrInvalidValue, s)
	}
}

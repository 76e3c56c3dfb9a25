package reference

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Tables is the resolved, immutable factor library. Build it with Parse,
// Load or Default; the zero value is not usable.
type Tables struct {
	version *semver.Version

	emissions    EmissionFactors
	waterHeating WaterHeating

	frequencies              []FrequencyFactor
	materials                []Material
	categories               []ProductCategory
	productTypes             []ProductType
	additionalCostCategories []string
	wasteStreams             []string
	dishwashers              []DishwasherSpec
	nationalAverage          UtilityRates
	states                   []StateRates

	occurrenceByFrequency map[Frequency]float64
	materialByID          map[MaterialID]Material
	categoryByID          map[CategoryID]ProductCategory
	productTypeByID       map[ProductTypeID]ProductType
	stateByCode           map[string]StateRates
}

// dishwasherKey identifies a dishwasher spec row.
type dishwasherKey struct {
	dishType    string
	temperature Temperature
	energyStar  bool
}

// Version returns the factor library version.
func (t *Tables) Version() *semver.Version {
	return t.version
}

// Emissions returns the fuel emission constants.
func (t *Tables) Emissions() EmissionFactors {
	return t.emissions
}

// WaterHeating returns the water heating constants.
func (t *Tables) WaterHeating() WaterHeating {
	return t.waterHeating
}

// AnnualOccurrence returns the purchases-per-year multiplier for f.
// "One Time" has no annual occurrence and, like any unknown frequency, is
// reported as ErrNotFound.
func (t *Tables) AnnualOccurrence(f Frequency) (float64, error) {
	occ, ok := t.occurrenceByFrequency[f]
	if !ok {
		return 0, fmt.Errorf("%w: frequency %q", ErrNotFound, f)
	}
	return occ, nil
}

// Frequencies returns the recurring frequencies in table order.
func (t *Tables) Frequencies() []FrequencyFactor {
	return append([]FrequencyFactor(nil), t.frequencies...)
}

// FrequencyByName resolves free text such as "weekly" to a Frequency.
func (t *Tables) FrequencyByName(name string) (Frequency, error) {
	n := normalizeName(name)
	if n == normalizeName(string(FrequencyOneTime)) || n == "onetime" {
		return FrequencyOneTime, nil
	}
	for _, f := range t.frequencies {
		if normalizeName(string(f.Name)) == n {
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("%w: frequency %q", ErrNotFound, name)
}

// Material returns the material with the given ID.
func (t *Tables) Material(id MaterialID) (Material, error) {
	m, ok := t.materialByID[id]
	if !ok {
		return Material{}, fmt.Errorf("%w: material %q", ErrNotFound, id)
	}
	return m, nil
}

// MaterialByName resolves a material by ID or display name.
func (t *Tables) MaterialByName(name string) (Material, error) {
	n := normalizeName(name)
	for _, m := range t.materials {
		if normalizeName(string(m.ID)) == n || normalizeName(m.Name) == n {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: material %q", ErrNotFound, name)
}

// Materials returns all materials in table order.
func (t *Tables) Materials() []Material {
	return append([]Material(nil), t.materials...)
}

// ProductCategory returns the category with the given ID.
func (t *Tables) ProductCategory(id CategoryID) (ProductCategory, error) {
	c, ok := t.categoryByID[id]
	if !ok {
		return ProductCategory{}, fmt.Errorf("%w: product category %q", ErrNotFound, id)
	}
	return c, nil
}

// ProductCategoryByName resolves a category by ID or display name.
func (t *Tables) ProductCategoryByName(name string) (ProductCategory, error) {
	n := normalizeName(name)
	for _, c := range t.categories {
		if normalizeName(string(c.ID)) == n || normalizeName(c.Name) == n {
			return c, nil
		}
	}
	return ProductCategory{}, fmt.Errorf("%w: product category %q", ErrNotFound, name)
}

// ProductCategories returns all categories in table order.
func (t *Tables) ProductCategories() []ProductCategory {
	return append([]ProductCategory(nil), t.categories...)
}

// ProductType returns the product type with the given ID.
func (t *Tables) ProductType(id ProductTypeID) (ProductType, error) {
	pt, ok := t.productTypeByID[id]
	if !ok {
		return ProductType{}, fmt.Errorf("%w: product type %q", ErrNotFound, id)
	}
	return pt, nil
}

// ProductTypeByName resolves a product type by ID or display name.
func (t *Tables) ProductTypeByName(name string) (ProductType, error) {
	n := normalizeName(name)
	for _, pt := range t.productTypes {
		if normalizeName(string(pt.ID)) == n || normalizeName(pt.Name) == n {
			return pt, nil
		}
	}
	return ProductType{}, fmt.Errorf("%w: product type %q", ErrNotFound, name)
}

// ProductTypes returns all product types in table order.
func (t *Tables) ProductTypes() []ProductType {
	return append([]ProductType(nil), t.productTypes...)
}

// AdditionalCostCategory resolves an additional cost category by name and
// returns its canonical spelling.
func (t *Tables) AdditionalCostCategory(name string) (string, error) {
	return matchName(t.additionalCostCategories, name, "additional cost category")
}

// AdditionalCostCategories returns the fixed list of additional cost categories.
func (t *Tables) AdditionalCostCategories() []string {
	return append([]string(nil), t.additionalCostCategories...)
}

// WasteStream resolves a waste stream by name and returns its canonical
// spelling.
func (t *Tables) WasteStream(name string) (string, error) {
	return matchName(t.wasteStreams, name, "waste stream")
}

// WasteStreams returns the waste streams in table order.
func (t *Tables) WasteStreams() []string {
	return append([]string(nil), t.wasteStreams...)
}

// Dishwasher returns the reference row for a dishwasher configuration.
func (t *Tables) Dishwasher(dishType string, temperature Temperature, energyStar bool) (DishwasherSpec, error) {
	want := dishwasherKey{normalizeName(dishType), temperature, energyStar}
	for _, d := range t.dishwashers {
		if (dishwasherKey{normalizeName(d.Type), d.Temperature, d.EnergyStarCertified}) == want {
			return d, nil
		}
	}
	return DishwasherSpec{}, fmt.Errorf("%w: dishwasher %q (%s temperature, energy star %t)",
		ErrNotFound, dishType, temperature, energyStar)
}

// Dishwashers returns all dishwasher spec rows in table order.
func (t *Tables) Dishwashers() []DishwasherSpec {
	return append([]DishwasherSpec(nil), t.dishwashers...)
}

// StateRates returns the default utility rates for a state code.
func (t *Tables) StateRates(code string) (StateRates, bool) {
	s, ok := t.stateByCode[strings.ToUpper(strings.TrimSpace(code))]
	return s, ok
}

// States returns all states in table order.
func (t *Tables) States() []StateRates {
	return append([]StateRates(nil), t.states...)
}

// NationalAverageRates returns the rates used when a state is unknown.
func (t *Tables) NationalAverageRates() UtilityRates {
	return t.nationalAverage
}

// DefaultRates returns the state's default utility rates, falling back to the
// national average for unknown states.
func (t *Tables) DefaultRates(state string) UtilityRates {
	if s, ok := t.StateRates(state); ok {
		return s.Rates
	}
	return t.nationalAverage
}

// matchName finds name in list ignoring case and surrounding space.
func matchName(list []string, name, kind string) (string, error) {
	n := normalizeName(name)
	for _, v := range list {
		if normalizeName(v) == n {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
}

// normalizeName lowercases s and strips whitespace so spreadsheet text
// like " Cups & lids " matches the canonical "Cups & Lids".
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

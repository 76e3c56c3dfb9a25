package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// defaultFactorLibrary is the factor library compiled into the binary.
//
//go:embed factors.yaml
var defaultFactorLibrary []byte

// document is the on-disk shape of a factor library.
type document struct {
	Version                  string            `yaml:"version"`
	Emissions                EmissionFactors   `yaml:"emissions"`
	WaterHeating             WaterHeating      `yaml:"water_heating"`
	Frequencies              []FrequencyFactor `yaml:"frequencies"`
	Materials                []Material        `yaml:"materials"`
	ProductCategories        []ProductCategory `yaml:"product_categories"`
	ProductTypes             []ProductType     `yaml:"product_types"`
	AdditionalCostCategories []string          `yaml:"additional_cost_categories"`
	WasteStreams             []string          `yaml:"waste_streams"`
	Dishwashers              []DishwasherSpec  `yaml:"dishwashers"`
	NationalAverage          UtilityRates      `yaml:"national_average"`
	States                   []StateRates      `yaml:"states"`
}

//nolint:gochecknoglobals // Memoized embedded library, immutable once built.
var defaultTables = sync.OnceValues(func() (*Tables, error) {
	return Parse(defaultFactorLibrary)
})

// Default returns the embedded factor library. It is parsed once per
// process; an error here means the binary was built with a broken library.
func Default() (*Tables, error) {
	return defaultTables()
}

// MustDefault is Default for callers that cannot proceed without tables,
// such as tests and package-level fixtures.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads and validates a factor library from path.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor library %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("factor library %s: %w", path, err)
	}
	return t, nil
}

// LoadWithConstraint loads a factor library and checks that its version
// satisfies constraint (e.g. ">= 1.0.0, < 2.0.0"). An empty constraint
// accepts any version.
func LoadWithConstraint(path, constraint string) (*Tables, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := t.CheckVersion(constraint); err != nil {
		return nil, err
	}
	return t, nil
}

// CheckVersion reports ErrIncompatibleVersion when the library version does
// not satisfy constraint. An empty constraint always passes.
func (t *Tables) CheckVersion(constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}
	if !c.Check(t.version) {
		return fmt.Errorf("%w: %s does not satisfy %q", ErrIncompatibleVersion, t.version, constraint)
	}
	return nil
}

// Parse decodes and validates a YAML factor library.
func Parse(data []byte) (*Tables, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}
	return build(doc)
}

// build indexes doc and validates cross references. Every problem found is
// reported, not only the first.
func build(doc document) (*Tables, error) {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	version, err := semver.NewVersion(doc.Version)
	if err != nil {
		fail("version %q: %w", doc.Version, err)
	}

	t := &Tables{
		version:                  version,
		emissions:                doc.Emissions,
		waterHeating:             doc.WaterHeating,
		frequencies:              doc.Frequencies,
		materials:                doc.Materials,
		categories:               doc.ProductCategories,
		productTypes:             doc.ProductTypes,
		additionalCostCategories: doc.AdditionalCostCategories,
		wasteStreams:             doc.WasteStreams,
		dishwashers:              doc.Dishwashers,
		nationalAverage:          doc.NationalAverage,
		states:                   doc.States,
		occurrenceByFrequency:    make(map[Frequency]float64, len(doc.Frequencies)),
		materialByID:             make(map[MaterialID]Material, len(doc.Materials)),
		categoryByID:             make(map[CategoryID]ProductCategory, len(doc.ProductCategories)),
		productTypeByID:          make(map[ProductTypeID]ProductType, len(doc.ProductTypes)),
		stateByCode:              make(map[string]StateRates, len(doc.States)),
	}

	if t.emissions.ElectricCO2EmissionsFactor <= 0 || t.emissions.NaturalGasCO2EmissionsFactor <= 0 ||
		t.emissions.PoundToTonne <= 0 {
		fail("emission factors must be positive")
	}
	wh := t.waterHeating
	if wh.WaterLbsPerGallon <= 0 || wh.BTUPerKWh <= 0 || wh.BTUPerTherm <= 0 ||
		wh.ElectricEfficiency <= 0 || wh.GasEfficiency <= 0 {
		fail("water heating constants must be positive")
	}
	if wh.BuildingTemperatureF < wh.InletTemperatureF || wh.BoosterTemperatureF < wh.BuildingTemperatureF {
		fail("water heating temperatures must satisfy inlet <= building <= booster")
	}

	for _, f := range doc.Frequencies {
		want, ok := canonicalOccurrences[f.Name]
		if !ok {
			fail("frequency %q is not one of Daily, Weekly, Monthly, Annually", f.Name)
			continue
		}
		if f.AnnualOccurrence != want {
			fail("frequency %q must occur %v times a year, got %v", f.Name, want, f.AnnualOccurrence)
		}
		t.occurrenceByFrequency[f.Name] = f.AnnualOccurrence
	}
	for name := range canonicalOccurrences {
		if _, ok := t.occurrenceByFrequency[name]; !ok {
			fail("frequency %q is missing", name)
		}
	}

	for _, m := range doc.Materials {
		if _, dup := t.materialByID[m.ID]; dup {
			fail("duplicate material %q", m.ID)
		}
		if m.MTCO2ePerLb > 0 {
			fail("material %q: mtco2e_per_lb must be <= 0, got %v", m.ID, m.MTCO2ePerLb)
		}
		if m.WaterUsageGalPerLb < 0 {
			fail("material %q: water_usage_gal_per_lb must be >= 0", m.ID)
		}
		t.materialByID[m.ID] = m
	}
	for _, required := range []MaterialID{MaterialNone, MaterialCorrugatedCardboard} {
		if _, ok := t.materialByID[required]; !ok {
			fail("required material %q is missing", required)
		}
	}
	if none, ok := t.materialByID[MaterialNone]; ok && (none.MTCO2ePerLb != 0 || none.WaterUsageGalPerLb != 0) {
		fail("material %q must have zero factors", MaterialNone)
	}

	for _, c := range doc.ProductCategories {
		if _, dup := t.categoryByID[c.ID]; dup {
			fail("duplicate product category %q", c.ID)
		}
		t.categoryByID[c.ID] = c
	}
	for _, pt := range doc.ProductTypes {
		if _, dup := t.productTypeByID[pt.ID]; dup {
			fail("duplicate product type %q", pt.ID)
		}
		if _, ok := t.categoryByID[pt.CategoryID]; !ok {
			fail("product type %q references unknown category %q", pt.ID, pt.CategoryID)
		}
		t.productTypeByID[pt.ID] = pt
	}

	if len(doc.AdditionalCostCategories) == 0 {
		fail("additional_cost_categories must not be empty")
	}
	if len(doc.WasteStreams) == 0 {
		fail("waste_streams must not be empty")
	}

	seen := make(map[dishwasherKey]bool, len(doc.Dishwashers))
	for _, d := range doc.Dishwashers {
		key := dishwasherKey{normalizeName(d.Type), d.Temperature, d.EnergyStarCertified}
		if seen[key] {
			fail("duplicate dishwasher spec %q/%s/%t", d.Type, d.Temperature, d.EnergyStarCertified)
		}
		seen[key] = true
		if d.Temperature != TemperatureHigh && d.Temperature != TemperatureLow {
			fail("dishwasher %q: temperature must be High or Low, got %q", d.Type, d.Temperature)
		}
		if d.WaterGallonsPerRack <= 0 || d.ElectricKWhPerRack < 0 {
			fail("dishwasher %q/%s: per-rack consumption must be positive", d.Type, d.Temperature)
		}
	}

	if !validRates(doc.NationalAverage) {
		fail("national_average rates must be positive")
	}
	for _, s := range doc.States {
		if _, dup := t.stateByCode[s.Code]; dup {
			fail("duplicate state %q", s.Code)
		}
		if !validRates(s.Rates) {
			fail("state %q: rates must be positive", s.Code)
		}
		t.stateByCode[s.Code] = s
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, errors.Join(errs...))
	}
	return t, nil
}

func validRates(r UtilityRates) bool {
	return r.Gas > 0 && r.Electric > 0 && r.Water > 0
}

package engine

import (
	"fmt"

	"github.com/rshade/reusecalc/internal/reference"
	"github.com/rshade/reusecalc/internal/units"
)

// purchaseTotals accumulates baseline and forecast purchasing for a set of
// line items.
type purchaseTotals struct {
	cost, newCost         float64
	units, newUnits       float64
	products, newProducts float64
}

func (t *purchaseTotals) add(li SingleUseLineItemPopulated, occ float64) {
	annualUnits := li.CasesPurchased * occ
	newAnnualUnits := li.NewCasesPurchased * occ

	t.units += annualUnits
	t.newUnits += newAnnualUnits
	t.cost = units.SumMoney(t.cost, units.MulMoney(li.CaseCost, annualUnits))
	t.newCost = units.SumMoney(t.newCost, units.MulMoney(li.NewCaseCost, newAnnualUnits))
	if annualUnits > 0 {
		t.products++
	}
	if newAnnualUnits > 0 {
		t.newProducts++
	}
}

func (t *purchaseTotals) summary() SingleUseSummary {
	return SingleUseSummary{
		AnnualCost:   getMoneyChangeSummaryRow(t.cost, t.newCost),
		AnnualUnits:  GetChangeSummaryRow(t.units, t.newUnits),
		ProductCount: GetChangeSummaryRow(t.products, t.newProducts),
	}
}

// breakdown groups purchasing by one reference dimension.
type breakdown struct {
	totals map[string]*purchaseTotals
}

func newBreakdown() *breakdown {
	return &breakdown{totals: make(map[string]*purchaseTotals)}
}

func (b *breakdown) add(id string, li SingleUseLineItemPopulated, occ float64) {
	t, ok := b.totals[id]
	if !ok {
		t = &purchaseTotals{}
		b.totals[id] = t
	}
	t.add(li, occ)
}

// table emits one row per group present, in the order of the reference
// table the groups were drawn from.
func (b *breakdown) table(order []idName) BreakdownTable {
	rows := make([]BreakdownRow, 0, len(b.totals))
	for _, ref := range order {
		t, ok := b.totals[ref.id]
		if !ok {
			continue
		}
		s := t.summary()
		rows = append(rows, BreakdownRow{
			ID:           ref.id,
			Name:         ref.name,
			AnnualCost:   s.AnnualCost,
			AnnualUnits:  s.AnnualUnits,
			ProductCount: s.ProductCount,
		})
	}
	return BreakdownTable{Rows: rows}
}

type idName struct {
	id, name string
}

// GetSingleUseProductResults aggregates single-use purchasing for the
// baseline and forecast scenarios, overall and by primary material, product
// category and product type.
func GetSingleUseProductResults(
	tables *reference.Tables,
	items []SingleUseLineItemPopulated,
) (SingleUseProductResults, error) {
	var total purchaseTotals
	byMaterial, byCategory, byType := newBreakdown(), newBreakdown(), newBreakdown()

	for i, li := range items {
		occ, err := tables.AnnualOccurrence(li.Frequency)
		if err != nil {
			return SingleUseProductResults{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		if _, err := tables.Material(li.Product.PrimaryMaterial); err != nil {
			return SingleUseProductResults{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		if _, err := tables.ProductCategory(li.Product.Category); err != nil {
			return SingleUseProductResults{}, fmt.Errorf("single-use item %d: %w", i, err)
		}
		if _, err := tables.ProductType(li.Product.Type); err != nil {
			return SingleUseProductResults{}, fmt.Errorf("single-use item %d: %w", i, err)
		}

		total.add(li, occ)
		byMaterial.add(string(li.Product.PrimaryMaterial), li, occ)
		byCategory.add(string(li.Product.Category), li, occ)
		byType.add(string(li.Product.Type), li, occ)
	}

	return SingleUseProductResults{
		Summary: total.summary(),
		ResultsByType: ResultsByType{
			Material:        byMaterial.table(materialOrder(tables)),
			ProductCategory: byCategory.table(categoryOrder(tables)),
			ProductType:     byType.table(typeOrder(tables)),
		},
	}, nil
}

func materialOrder(tables *reference.Tables) []idName {
	materials := tables.Materials()
	out := make([]idName, len(materials))
	for i, m := range materials {
		out[i] = idName{string(m.ID), m.Name}
	}
	return out
}

func categoryOrder(tables *reference.Tables) []idName {
	categories := tables.ProductCategories()
	out := make([]idName, len(categories))
	for i, c := range categories {
		out[i] = idName{string(c.ID), c.Name}
	}
	return out
}

func typeOrder(tables *reference.Tables) []idName {
	types := tables.ProductTypes()
	out := make([]idName, len(types))
	for i, pt := range types {
		out[i] = idName{string(pt.ID), pt.Name}
	}
	return out
}

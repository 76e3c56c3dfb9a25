package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/reusecalc/internal/logging"
	"github.com/rshade/reusecalc/internal/reference"
)

// Calculator runs the projection engines against one set of reference
// tables. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	tables *reference.Tables
}

// NewCalculator returns a Calculator bound to tables.
func NewCalculator(tables *reference.Tables) (*Calculator, error) {
	if tables == nil {
		return nil, errors.New("reference tables are required")
	}
	return &Calculator{tables: tables}, nil
}

// Tables returns the reference tables the calculator uses.
func (c *Calculator) Tables() *reference.Tables {
	return c.tables
}

// EffectiveRates returns the utility rates used for a project: each rate the
// project entered wins, and missing rates come from the state default.
func (c *Calculator) EffectiveRates(project ProjectInput) reference.UtilityRates {
	defaults := c.tables.DefaultRates(project.State)
	rates := project.UtilityRates
	if rates.Gas == 0 {
		rates.Gas = defaults.Gas
	}
	if rates.Electric == 0 {
		rates.Electric = defaults.Electric
	}
	if rates.Water == 0 {
		rates.Water = defaults.Water
	}
	return rates
}

// GetProjections computes the full report for one project.
func (c *Calculator) GetProjections(ctx context.Context, project ProjectInput) (*Projections, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "GetProjections").
		Str("project_id", project.ID).
		Logger()

	if err := project.Validate(c.tables); err != nil {
		return nil, err
	}

	rates := c.EffectiveRates(project)
	dishwasher, err := GetDishwasherUsage(c.tables, project.Dishwasher, rates)
	if err != nil {
		return nil, err
	}

	singleUse, err := GetSingleUseProductResults(c.tables, project.SingleUseItems)
	if err != nil {
		return nil, err
	}
	environmental, err := GetEnvironmentalResults(c.tables, project.SingleUseItems, dishwasher)
	if err != nil {
		return nil, err
	}
	financial, err := GetFinancialResults(c.tables, project, singleUse.Summary.AnnualCost.Change, dishwasher)
	if err != nil {
		return nil, err
	}

	p := &Projections{
		AnnualSummary: AnnualSummary{
			DollarCost:             financial.AnnualCostChanges.Total,
			SingleUseProductCount:  singleUse.Summary.AnnualUnits.Change,
			GreenhouseGasEmissions: environmental.AnnualGasEmissionChanges.Total,
			WasteWeight:            environmental.AnnualWasteChanges.Total.Change,
		},
		EnvironmentalResults:    environmental,
		FinancialResults:        financial,
		SingleUseProductResults: singleUse,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("project %q: %w", project.ID, err)
	}

	logger.Debug().
		Int("single_use_items", len(project.SingleUseItems)).
		Bool("dishwasher", project.Dishwasher != nil).
		Float64("annual_cost_change", p.AnnualSummary.DollarCost).
		Float64("ghg_change_mtco2e", p.AnnualSummary.GreenhouseGasEmissions).
		Msg("projections computed")

	return p, nil
}

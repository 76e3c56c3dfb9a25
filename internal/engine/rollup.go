package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshade/reusecalc/internal/engine/batch"
	"github.com/rshade/reusecalc/internal/logging"
	"github.com/rshade/reusecalc/internal/units"
)

// ErrNoProjects is returned when a roll-up is requested for zero projects.
var ErrNoProjects = errors.New("no projects to roll up")

// RollupOptions control how an organization roll-up is computed.
type RollupOptions struct {
	// Concurrency is the number of batches computed at once. Values below 1
	// mean sequential.
	Concurrency int
	// BatchSize is the number of projects per batch; 0 uses the default.
	BatchSize int
}

// OrganizationProjections sums each engine's headline numbers across
// projects. Payback and ROI are recomputed from the summed totals.
type OrganizationProjections struct {
	ProjectCount  int                       `json:"projectCount"`
	AnnualSummary AnnualSummary             `json:"annualSummary"`
	Environmental OrganizationEnvironmental `json:"environmental"`
	Financial     OrganizationFinancial     `json:"financial"`
	SingleUse     SingleUseSummary          `json:"singleUse"`
	Projects      []ProjectSummary          `json:"projects"`
}

// OrganizationEnvironmental are the summed environmental headlines.
type OrganizationEnvironmental struct {
	LandfillWaste float64       `json:"landfillWaste"`
	Dishwashing   float64       `json:"dishwashing"`
	Total         float64       `json:"total"`
	WasteWeight   ChangeSummary `json:"wasteWeight"`
	WaterUsage    ChangeSummary `json:"waterUsage"`
}

// OrganizationFinancial are the summed financial headlines.
type OrganizationFinancial struct {
	OneTimeCosts      OneTimeCosts      `json:"oneTimeCosts"`
	AnnualCostChanges AnnualCostChanges `json:"annualCostChanges"`
	Summary           FinancialSummary  `json:"summary"`
}

// ProjectSummary is one project's line in a roll-up.
type ProjectSummary struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	AnnualSummary AnnualSummary    `json:"annualSummary"`
	Financial     FinancialSummary `json:"financial"`
}

// GetOrganizationProjections computes every project's report and sums the
// results in input order. Projects are independent; the totals do not depend
// on how the work is scheduled.
func (c *Calculator) GetOrganizationProjections(
	ctx context.Context,
	projects []ProjectInput,
	opts RollupOptions,
) (*OrganizationProjections, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "engine").
		Str("operation", "GetOrganizationProjections").
		Logger()

	if len(projects) == 0 {
		return nil, ErrNoProjects
	}

	processor := batch.NewProcessorWithDefaults[ProjectInput]()
	if opts.BatchSize > 0 {
		p, err := batch.NewProcessor[ProjectInput](opts.BatchSize)
		if err != nil {
			return nil, err
		}
		processor = p
	}
	processor.WithProgressCallback(func(s batch.ProgressSnapshot) {
		logger.Debug().
			Int("processed", s.ProcessedItems).
			Int("total", s.TotalItems).
			Float64("percent", s.PercentComplete).
			Msg("roll-up progress")
	})

	reports := make([]*Projections, len(projects))
	compute := func(ctx context.Context, span batch.Span[ProjectInput]) error {
		for i, project := range span.Items {
			p, err := c.GetProjections(ctx, project)
			if err != nil {
				return fmt.Errorf("project %d (%s): %w", span.Start+i, project.Name, err)
			}
			reports[span.Start+i] = p
		}
		return nil
	}

	var err error
	if opts.Concurrency > 1 {
		err = processor.ProcessConcurrent(ctx, projects, compute, opts.Concurrency)
	} else {
		err = processor.Process(ctx, projects, compute)
	}
	if err != nil {
		return nil, err
	}

	org := sumProjections(projects, reports)
	logger.Debug().
		Int("projects", org.ProjectCount).
		Float64("annual_cost_change", org.AnnualSummary.DollarCost).
		Msg("organization roll-up computed")
	return org, nil
}

func sumProjections(projects []ProjectInput, reports []*Projections) *OrganizationProjections {
	org := &OrganizationProjections{
		ProjectCount: len(reports),
		Projects:     make([]ProjectSummary, 0, len(reports)),
	}

	for i, p := range reports {
		s := &org.AnnualSummary
		s.DollarCost = units.SumMoney(s.DollarCost, p.AnnualSummary.DollarCost)
		s.SingleUseProductCount += p.AnnualSummary.SingleUseProductCount
		s.GreenhouseGasEmissions += p.AnnualSummary.GreenhouseGasEmissions
		s.WasteWeight += p.AnnualSummary.WasteWeight

		env := &org.Environmental
		gas := p.EnvironmentalResults.AnnualGasEmissionChanges
		env.LandfillWaste += gas.LandfillWaste
		env.Dishwashing += gas.Dishwashing
		env.Total += gas.Total
		env.WasteWeight = env.WasteWeight.Add(p.EnvironmentalResults.AnnualWasteChanges.Total)
		env.WaterUsage = env.WaterUsage.Add(p.EnvironmentalResults.AnnualWaterUsageChanges.Total)

		fin := &org.Financial
		fin.OneTimeCosts = addOneTimeCosts(fin.OneTimeCosts, p.FinancialResults.OneTimeCosts)
		fin.AnnualCostChanges = addAnnualCostChanges(fin.AnnualCostChanges, p.FinancialResults.AnnualCostChanges)

		su := &org.SingleUse
		su.AnnualCost = addMoneyRows(su.AnnualCost, p.SingleUseProductResults.Summary.AnnualCost)
		su.AnnualUnits = su.AnnualUnits.Add(p.SingleUseProductResults.Summary.AnnualUnits)
		su.ProductCount = su.ProductCount.Add(p.SingleUseProductResults.Summary.ProductCount)

		org.Projects = append(org.Projects, ProjectSummary{
			ID:            projects[i].ID,
			Name:          projects[i].Name,
			AnnualSummary: p.AnnualSummary,
			Financial:     p.FinancialResults.Summary,
		})
	}

	org.Financial.Summary = GetFinancialSummary(
		org.Financial.OneTimeCosts.Total,
		org.Financial.AnnualCostChanges.Total,
	)
	return org
}

func addMoneyRows(a, b ChangeSummary) ChangeSummary {
	return getMoneyChangeSummaryRow(
		units.SumMoney(a.Baseline, b.Baseline),
		units.SumMoney(a.Followup, b.Followup),
	)
}

func addOneTimeCosts(a, b OneTimeCosts) OneTimeCosts {
	return OneTimeCosts{
		ReusableProductCosts: units.SumMoney(a.ReusableProductCosts, b.ReusableProductCosts),
		AdditionalCosts:      units.SumMoney(a.AdditionalCosts, b.AdditionalCosts),
		Total:                units.SumMoney(a.Total, b.Total),
	}
}

func addAnnualCostChanges(a, b AnnualCostChanges) AnnualCostChanges {
	return AnnualCostChanges{
		AdditionalCosts:        units.SumMoney(a.AdditionalCosts, b.AdditionalCosts),
		ReusableProductCosts:   units.SumMoney(a.ReusableProductCosts, b.ReusableProductCosts),
		SingleUseProductChange: units.SumMoney(a.SingleUseProductChange, b.SingleUseProductChange),
		Utilities:              units.SumMoney(a.Utilities, b.Utilities),
		WasteHauling:           units.SumMoney(a.WasteHauling, b.WasteHauling),
		Total:                  units.SumMoney(a.Total, b.Total),
	}
}

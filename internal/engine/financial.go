package engine

import (
	"fmt"

	"github.com/rshade/reusecalc/internal/reference"
	"github.com/rshade/reusecalc/internal/units"
)

const (
	monthsPerYear     = 12
	roiPrecision      = 2
	percentMultiplier = 100.0
)

// GetOneTimeCosts sums reusable product purchases and one-time additional
// costs.
func GetOneTimeCosts(reusables []ReusableLineItem, additional []AdditionalCost) OneTimeCosts {
	var reusable, extra float64
	for _, r := range reusables {
		reusable = units.SumMoney(reusable, units.MulMoney(r.CaseCost, r.CasesPurchased))
	}
	for _, c := range additional {
		if c.Frequency.IsOneTime() {
			extra = units.SumMoney(extra, c.Cost)
		}
	}
	return OneTimeCosts{
		ReusableProductCosts: reusable,
		AdditionalCosts:      extra,
		Total:                units.SumMoney(reusable, extra),
	}
}

// GetAnnualCostChanges sums the recurring annual cost deltas. singleUseChange
// is the forecast minus baseline single-use purchasing cost.
func GetAnnualCostChanges(
	tables *reference.Tables,
	project ProjectInput,
	singleUseChange float64,
	dishwasher DishwasherResults,
) (AnnualCostChanges, error) {
	var additional float64
	for i, c := range project.AdditionalCosts {
		if c.Frequency.IsOneTime() {
			continue
		}
		occ, err := tables.AnnualOccurrence(c.Frequency)
		if err != nil {
			return AnnualCostChanges{}, fmt.Errorf("additional cost %d: %w", i, err)
		}
		additional = units.SumMoney(additional, units.MulMoney(c.Cost, occ))
	}

	var repurchase float64
	for _, r := range project.ReusableItems {
		spend := units.MulMoney(r.CaseCost, r.CasesPurchased, r.AnnualRepurchasePercentage/maxPercentage)
		repurchase = units.SumMoney(repurchase, spend)
	}

	hauling := units.SumMoney(
		annualHaulingCost(project.NewWasteHauling),
		-annualHaulingCost(project.WasteHauling),
	)
	utilities := dishwasher.CostChange()

	return AnnualCostChanges{
		AdditionalCosts:        additional,
		ReusableProductCosts:   repurchase,
		SingleUseProductChange: singleUseChange,
		Utilities:              utilities,
		WasteHauling:           hauling,
		Total:                  units.SumMoney(additional, repurchase, singleUseChange, utilities, hauling),
	}, nil
}

func annualHaulingCost(services []WasteHaulingService) float64 {
	var total float64
	for _, s := range services {
		total = units.SumMoney(total, units.MulMoney(s.MonthlyCost, monthsPerYear))
	}
	return total
}

// GetFinancialSummary derives the payback period and annual ROI. Both are nil
// when the program does not produce net annual savings; ROI is also nil
// without a one-time investment.
//
// Payback is round(oneTime / savings × 12) months and ROI is
// round((savings − oneTime) / oneTime × 100, 2) percent, where savings is
// −annualCost. ROI is net of the investment: the reference workbook reports
// 200.59 for $30,197.65 saved on $10,046 spent.
func GetFinancialSummary(oneTimeCost, annualCost float64) FinancialSummary {
	s := FinancialSummary{OneTimeCost: oneTimeCost, AnnualCost: annualCost}
	if annualCost >= 0 {
		return s
	}
	savings := -annualCost

	payback := units.Round(oneTimeCost/savings*monthsPerYear, 0)
	s.PaybackPeriodsMonths = &payback

	if oneTimeCost > 0 {
		roi := units.Round((savings-oneTimeCost)/oneTimeCost*percentMultiplier, roiPrecision)
		s.AnnualROIPercent = &roi
	}
	return s
}

// GetFinancialResults assembles one-time costs, recurring cost changes and
// the payback summary.
func GetFinancialResults(
	tables *reference.Tables,
	project ProjectInput,
	singleUseChange float64,
	dishwasher DishwasherResults,
) (FinancialResults, error) {
	oneTime := GetOneTimeCosts(project.ReusableItems, project.AdditionalCosts)
	annual, err := GetAnnualCostChanges(tables, project, singleUseChange, dishwasher)
	if err != nil {
		return FinancialResults{}, err
	}
	return FinancialResults{
		OneTimeCosts:      oneTime,
		AnnualCostChanges: annual,
		Summary:           GetFinancialSummary(oneTime.Total, annual.Total),
		UtilityDetails:    dishwasher,
	}, nil
}

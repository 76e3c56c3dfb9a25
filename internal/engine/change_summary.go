package engine

import "github.com/rshade/reusecalc/internal/units"

// ChangeSummary is the baseline-vs-forecast tuple reported for every
// compared metric. Change is Followup-Baseline; ChangePercent is the whole
// percent change, 0 when the baseline is 0.
type ChangeSummary struct {
	Baseline      float64 `json:"baseline"`
	Followup      float64 `json:"followup"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// GetChangeSummaryRow builds a fully populated ChangeSummary. It never fails:
// a zero baseline yields a ChangePercent of 0 rather than a division error.
func GetChangeSummaryRow(baseline, followup float64) ChangeSummary {
	return ChangeSummary{
		Baseline:      baseline,
		Followup:      followup,
		Change:        followup - baseline,
		ChangePercent: units.PercentChange(baseline, followup),
	}
}

// getMoneyChangeSummaryRow is GetChangeSummaryRow for dollar amounts: the
// change is computed exactly and rounded to cents.
func getMoneyChangeSummaryRow(baseline, followup float64) ChangeSummary {
	row := GetChangeSummaryRow(baseline, followup)
	row.Change = units.SumMoney(followup, -baseline)
	return row
}

// IsSavings reports whether the forecast is lower than the baseline. For
// costs, weights and emissions a negative change is an improvement.
func (c ChangeSummary) IsSavings() bool {
	return c.Change < 0
}

// IsIncrease reports whether the forecast is higher than the baseline.
func (c ChangeSummary) IsIncrease() bool {
	return c.Change > 0
}

// Add returns the element-wise sum of two rows with the percent change
// recomputed from the summed baseline and forecast.
func (c ChangeSummary) Add(other ChangeSummary) ChangeSummary {
	return GetChangeSummaryRow(c.Baseline+other.Baseline, c.Followup+other.Followup)
}

// Package units holds the small numeric helpers shared by the calculation
// engines: rounding, exact money arithmetic, percent change and display
// formatting.
package units

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// percentMultiplier converts a ratio to a percentage.
	percentMultiplier = 100.0

	// centsPrecision is the number of decimal places money is rounded to.
	centsPrecision = 2
)

// Round rounds value to the given number of decimal places, half away from
// zero.
func Round(value float64, decimals int) float64 {
	const base = 10
	multiplier := math.Pow(base, float64(decimals))
	return math.Round(value*multiplier) / multiplier
}

// PercentChange returns the whole-number percent change from baseline to
// followup. A zero baseline has no meaningful relative change and yields 0.
func PercentChange(baseline, followup float64) float64 {
	if baseline == 0 {
		return 0
	}
	return Round((followup-baseline)/baseline*percentMultiplier, 0)
}

// SumMoney adds dollar amounts exactly and rounds the result to cents.
// Float addition of spreadsheet values drifts by fractions of a cent, which
// breaks exact comparisons against reference results. A NaN or infinite
// amount cannot be represented as a decimal, so the plain float sum is
// returned instead and stays non-finite.
func SumMoney(amounts ...float64) float64 {
	if !allFinite(amounts) {
		var sum float64
		for _, a := range amounts {
			sum += a
		}
		return sum
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return RoundMoney(total)
}

// MulMoney multiplies factors exactly and rounds the product to cents.
func MulMoney(factors ...float64) float64 {
	if len(factors) == 0 {
		return 0
	}
	if !allFinite(factors) {
		product := 1.0
		for _, f := range factors {
			product *= f
		}
		return product
	}
	product := decimal.NewFromFloat(factors[0])
	for _, f := range factors[1:] {
		product = product.Mul(decimal.NewFromFloat(f))
	}
	return RoundMoney(product)
}

// RoundMoney rounds d to cents and converts it to float64. Values beyond the
// float64 range come back as ±Inf.
func RoundMoney(d decimal.Decimal) float64 {
	f, _ := d.Round(centsPrecision).Float64()
	return f
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

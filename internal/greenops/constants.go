package greenops

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Unit conversions to kilograms.
const (
	GramsToKg      = 0.001
	KgToKg         = 1.0
	MetricTonsToKg = 1000.0
	PoundsToKg     = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest quantity that gets
	// equivalencies; below it the numbers round to nothing meaningful.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches to "~X.X million" display.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches to "~X.X billion" display.
	BillionThreshold = 1_000_000_000
)

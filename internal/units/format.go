package units

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the display currency when none is configured.
const DefaultCurrency = "USD"

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats v with thousands separators and a fixed number of
// decimals. Example: FormatNumber(1234.567, 2) returns "1,234.57".
func FormatNumber(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	rounded := Round(v, precision)
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}

	formatted := strconv.FormatFloat(rounded, 'f', precision, 64)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}
	grouped := printer.Sprintf("%d", n)
	if intPart == "-0" {
		grouped = "-0"
	}
	if hasFrac {
		return grouped + "." + fracPart
	}
	return grouped
}

// FormatDollars formats v as a money amount. USD renders as "$1,234.57",
// negative amounts as "-$1,234.57". Other currencies are a display label
// only and are suffixed with their code, e.g. "1,234.57 EUR".
func FormatDollars(v float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	amount := FormatNumber(math.Abs(v), centsPrecision)
	sign := ""
	if Round(v, centsPrecision) < 0 {
		sign = "-"
	}

	if currency == DefaultCurrency {
		return sign + "$" + amount
	}
	return sign + amount + " " + currency
}

// FormatPercent formats a whole-number percent change with an explicit sign,
// e.g. "+12%", "-70%", "0%".
func FormatPercent(p float64) string {
	rounded := Round(p, 0)
	switch {
	case rounded > 0:
		return "+" + FormatNumber(rounded, 0) + "%"
	case rounded < 0:
		return FormatNumber(rounded, 0) + "%"
	default:
		return "0%"
	}
}

package greenops

import (
	"fmt"
	"math"

	"github.com/rshade/reusecalc/internal/units"
)

// FormatLarge formats n with abbreviated notation at million and billion
// scale and thousands separators below that.
//
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return units.FormatNumber(math.Round(n), 0)
}

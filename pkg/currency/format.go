// Package currency renders CLP-style amounts: thousands grouped with a dot,
// never any decimal places.
package currency

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Format renders value with grouped thousands, e.g. 849990 -> "$849.990".
// The amount is rounded to a whole number; a negative sign sits between the
// symbol and the digits ("$-1.000"). NaN and infinities render as zero.
// withSymbol controls the "$" prefix.
func Format(value float64, withSymbol bool) string {
	var amount int64
	if !math.IsNaN(value) && !math.IsInf(value, 0) {
		amount = int64(math.Round(value))
	}

	formatted := strings.ReplaceAll(humanize.Comma(amount), ",", ".")
	if withSymbol {
		return "$" + formatted
	}
	return formatted
}

package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round1 rounds to one decimal place, half away from zero. Used when
// building responses; the engine itself never rounds. NaN and infinities
// have no decimal form and round to nil.
func Round1(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	r := decimal.NewFromFloat(*v).Round(1).InexactFloat64()
	return &r
}

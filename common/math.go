package common

import (
	"github.com/shopspring/decimal"
	"math"
	"strconv"
	"strings"
)

// DecimalToFixed rounds num to precision fractional digits, half away from zero.
// Rounding works on the shortest decimal representation of num,
// so 0.1+0.2 rounds like 0.3 would, not like 0.30000000000000004.
// NaN and infinities are returned unchanged.
func DecimalToFixed(num float64, precision int) float64 {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return num
	}
	return decimal.NewFromFloat(num).Round(int32(precision)).InexactFloat64()
}

// FormatDecimal formats num in its shortest decimal form,
// always with at least one fractional digit, eg. "0.0", "0.01", "29.9".
func FormatDecimal(num float64) string {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
	s := decimal.NewFromFloat(num).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders v with thousands separators and two decimals, without
// the currency sign: 15000 -> "15,000.00". Half-cent ties round the way
// strconv does (0.125 -> "0.12").
func FormatCurrency(v float64) string {
	fixed := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	sign := ""
	if v < 0 && fixed != "0.00" {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + humanize.Comma(n) + "." + frac
}

// FormatCount renders a count as a plain integer.
func FormatCount[T ~int | ~int64](n T) string {
	return strconv.FormatInt(int64(n), 10)
}

package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// currencyReplacer strips the decoration characters CRM exports wrap around
// numbers: currency symbol, thousands separators, stray whitespace.
var currencyReplacer = strings.NewReplacer("$", "", ",", "", " ", "", "\t", "")

// ParseCurrency parses a numeric-as-string field into a finite float64.
// Inputs may be plain numerals or decorated currency text ("$12,345.67").
// Every failure mode degrades to 0: empty input, non-numeric text, NaN and
// infinities. It never panics and never returns a non-finite value.
//
// Parsing a canonical numeric string round-trips exactly; parsing the
// output of FormatCurrency does not, because formatting compacts.
func ParseCurrency(raw string) float64 {
	cleaned := currencyReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatCurrency renders an amount for display, compacting large magnitudes
// ($1.2M, $34.5K). The output is lossy and not meant to round-trip through
// ParseCurrency.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%s$%.1fM", sign, v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%s$%.1fK", sign, v/1e3)
	default:
		return fmt.Sprintf("%s$%.2f", sign, v)
	}
}

package analytics

import (
	"math"
	"time"

	"leadpulse/internal/dataprocessing"
	"leadpulse/pkg/contracts/domain"
)

// Tunables of the engine. These are contractual defaults, overridable per
// Calculator for tests and special reports.
const (
	// DefaultRecencyWindow is how far back from the reference instant an
	// account's last activity may lie to count as recent.
	DefaultRecencyWindow = 90 * 24 * time.Hour

	// DefaultTrendMonths caps the monthly trend at the most recent months
	// present in the data (not calendar-relative).
	DefaultTrendMonths = 12

	// DefaultRankSize is the length of the top/least performing lists.
	DefaultRankSize = 5

	// DefaultPeakHours is how many histogram hours are reported.
	DefaultPeakHours = 5

	// placeholderAvgResponseHours is the fixed response-time figure. It is
	// not telemetry; the snapshot carries it with Estimated set.
	placeholderAvgResponseHours = 2.5
)

// negativeBandLabel holds every strictly negative sales value.
const negativeBandLabel = "Negative"

// positiveBandDef is one non-negative band of the revenue distribution,
// exclusive of the previous band's Upper bound, inclusive of its own.
type positiveBandDef struct {
	Label string
	Upper float64
}

// positiveBands is the ordered non-negative band list. Band edges are data
// so the distribution stays independently testable.
var positiveBands = []positiveBandDef{
	{Label: "$0 - $1K", Upper: 1000},
	{Label: "$1K - $5K", Upper: 5000},
	{Label: "$5K - $10K", Upper: 10000},
	{Label: "$10K - $25K", Upper: 25000},
	{Label: "$25K+", Upper: math.Inf(1)},
}

// salesValues is the per-account parse of SalesAmount shared by all
// computations: value and whether it passes the validity predicate
// (finite, magnitude within domain.MaxValidSalesValue).
type salesValues struct {
	value []float64
	valid []bool
}

func parseSales(accounts []domain.Account) salesValues {
	sv := salesValues{
		value: make([]float64, len(accounts)),
		valid: make([]bool, len(accounts)),
	}
	for i, a := range accounts {
		v := dataprocessing.ParseCurrency(a.SalesAmount)
		sv.value[i] = v
		sv.valid[i] = v <= domain.MaxValidSalesValue && v >= -domain.MaxValidSalesValue
	}
	return sv
}

package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"leadpulse/internal/dataprocessing"
	"leadpulse/pkg/contracts/domain"
)

// Calculator computes dashboard snapshots. It holds no mutable state
// between runs; a single instance is safe for concurrent use.
type Calculator struct {
	logger *slog.Logger

	recencyWindow time.Duration
	trendMonths   int
	rankSize      int
	peakHours     int
}

// NewCalculator creates a calculator with the default tunables. A nil
// logger falls back to slog.Default.
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		logger:        logger.With(slog.String("component", "analytics")),
		recencyWindow: DefaultRecencyWindow,
		trendMonths:   DefaultTrendMonths,
		rankSize:      DefaultRankSize,
		peakHours:     DefaultPeakHours,
	}
}

// Snapshot aggregates the account collection into one dashboard snapshot.
// asOf is the reference instant for the recency window and the risk
// labels; the engine never consults the system clock, so pinning asOf
// makes the result fully deterministic.
func (c *Calculator) Snapshot(ctx context.Context, accounts []domain.Account, asOf time.Time) *domain.Snapshot {
	started := time.Now()
	sales := parseSales(accounts)

	snap := &domain.Snapshot{
		GeneratedAt:   asOf,
		TotalAccounts: len(accounts),
	}

	snap.TotalRevenue, snap.AverageDealSize = c.totals(sales)
	snap.RevenueDistribution = c.revenueDistribution(sales)
	snap.SalesByRep, snap.SalesByBrand = c.repAndBrandRollups(accounts, sales)
	snap.SalesByState = c.stateRollup(accounts, sales)
	snap.RecentActivityCount = c.recentActivity(accounts, asOf)
	snap.MonthlyTrend = c.monthlyTrend(accounts, sales)
	snap.SeasonalTrend = c.seasonalTrend(accounts, sales)
	snap.TopPerforming, snap.LeastPerforming = c.ranking(accounts, sales)
	snap.LifecycleDistribution = c.lifecycleDistribution(accounts)
	snap.TrafficSources = c.trafficSources(accounts, sales)
	snap.Campaigns = c.campaigns(accounts, sales)
	snap.LandingPages = c.landingPages(accounts, sales)
	snap.LeadScores = c.leadScores(accounts, asOf)
	snap.HotLeads, snap.WarmLeads, snap.CoolLeads, snap.ColdLeads = temperatureCounts(snap.LeadScores)
	snap.PeakHours = c.peakActivityHours(accounts)
	snap.ResponseTime = c.responseTime(snap.SalesByRep)

	snap.Accounts = make([]domain.AccountView, 0, len(accounts))
	for _, a := range accounts {
		snap.Accounts = append(snap.Accounts, a.View())
	}

	c.logger.InfoContext(ctx, "snapshot computed",
		slog.Int("accounts", len(accounts)),
		slog.Float64("total_revenue", snap.TotalRevenue),
		slog.Time("as_of", asOf),
		slog.Duration("elapsed", time.Since(started)),
	)
	return snap
}

// totals sums valid sales values; the average covers only the strictly
// positive ones. Values failing the validity predicate are skipped
// entirely, not zeroed.
func (c *Calculator) totals(sales salesValues) (revenue, avgDeal float64) {
	positive := 0
	positiveSum := 0.0
	for i, v := range sales.value {
		if !sales.valid[i] {
			continue
		}
		revenue += v
		if v > 0 {
			positive++
			positiveSum += v
		}
	}
	if positive > 0 {
		avgDeal = positiveSum / float64(positive)
	}
	return revenue, avgDeal
}

// revenueDistribution buckets every valid sales value into the fixed
// bands. All bands are present in the output, empty or not, so charts keep
// a stable shape.
func (c *Calculator) revenueDistribution(sales salesValues) []domain.RevenueBand {
	bands := make([]domain.RevenueBand, 0, len(positiveBands)+1)
	bands = append(bands, domain.RevenueBand{Label: negativeBandLabel})
	for _, def := range positiveBands {
		bands = append(bands, domain.RevenueBand{Label: def.Label})
	}

	for i, v := range sales.value {
		if !sales.valid[i] {
			continue
		}
		idx := 0
		if v >= 0 {
			idx = 1
			for j, def := range positiveBands {
				if v <= def.Upper {
					idx = 1 + j
					break
				}
			}
		}
		bands[idx].Accounts++
		bands[idx].Revenue += v
	}
	return bands
}

// repAndBrandRollups accumulates {count, revenue} per representative and
// per extracted brand. Every account lands in exactly one bucket of each
// rollup; entries are created lazily so no bucket has zero accounts.
func (c *Calculator) repAndBrandRollups(accounts []domain.Account, sales salesValues) (byRep, byBrand map[string]domain.RollupStats) {
	byRep = make(map[string]domain.RollupStats)
	byBrand = make(map[string]domain.RollupStats)
	for i, a := range accounts {
		rep := a.Owner
		if rep == "" {
			rep = domain.NotAvailable
		}
		brand := dataprocessing.ExtractBrand(a.Name)

		addRollup(byRep, rep, sales, i)
		addRollup(byBrand, brand, sales, i)
	}
	return byRep, byBrand
}

// addRollup counts the account and adds its sales value when valid.
func addRollup(m map[string]domain.RollupStats, key string, sales salesValues, i int) {
	stats := m[key]
	stats.Accounts++
	if sales.valid[i] {
		stats.Revenue += sales.value[i]
	}
	m[key] = stats
}

// recentActivity counts accounts whose last activity falls inside the
// recency window ending at asOf. Accounts without a parseable activity
// date are skipped for this counter only.
func (c *Calculator) recentActivity(accounts []domain.Account, asOf time.Time) int {
	count := 0
	for _, a := range accounts {
		if a.LastActivity == nil {
			continue
		}
		age := asOf.Sub(*a.LastActivity)
		if age >= 0 && age <= c.recencyWindow {
			count++
		}
	}
	return count
}

// monthlyTrend buckets accounts by creation year-month and keeps the most
// recent trendMonths buckets present in the data, ascending by month key.
func (c *Calculator) monthlyTrend(accounts []domain.Account, sales salesValues) []domain.MonthBucket {
	byMonth := make(map[string]*domain.MonthBucket)
	for i, a := range accounts {
		if a.CreatedAt == nil {
			continue
		}
		key := a.CreatedAt.Format("2006-01")
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &domain.MonthBucket{Month: key}
			byMonth[key] = bucket
		}
		bucket.Accounts++
		if sales.valid[i] {
			bucket.Revenue += sales.value[i]
		}
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > c.trendMonths {
		keys = keys[len(keys)-c.trendMonths:]
	}

	trend := make([]domain.MonthBucket, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, *byMonth[k])
	}
	return trend
}

// seasonalTrend rolls creation months up across years, January through
// December, keeping only months present in the data.
func (c *Calculator) seasonalTrend(accounts []domain.Account, sales salesValues) []domain.MonthBucket {
	var buckets [12]domain.MonthBucket
	for i, a := range accounts {
		if a.CreatedAt == nil {
			continue
		}
		m := int(a.CreatedAt.Month()) - 1
		buckets[m].Accounts++
		if sales.valid[i] {
			buckets[m].Revenue += sales.value[i]
		}
	}

	trend := make([]domain.MonthBucket, 0, 12)
	for m, b := range buckets {
		if b.Accounts == 0 {
			continue
		}
		b.Month = time.Month(m + 1).String()
		trend = append(trend, b)
	}
	return trend
}

// ranking sorts accounts with valid sales values descending (stable: ties
// keep input order). The head is the top list. The least-performing list
// is the reversed tail of the same order — the lowest values, most
// negative first — which pads with the lowest non-negative accounts
// whenever fewer negatives exist than the list holds.
func (c *Calculator) ranking(accounts []domain.Account, sales salesValues) (top, least []domain.AccountView) {
	idx := make([]int, 0, len(accounts))
	for i := range accounts {
		if sales.valid[i] {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return sales.value[idx[a]] > sales.value[idx[b]]
	})

	n := c.rankSize
	if n > len(idx) {
		n = len(idx)
	}
	top = make([]domain.AccountView, 0, n)
	for _, i := range idx[:n] {
		top = append(top, accounts[i].View())
	}

	least = make([]domain.AccountView, 0, n)
	tail := idx[len(idx)-n:]
	for j := len(tail) - 1; j >= 0; j-- {
		least = append(least, accounts[tail[j]].View())
	}
	return top, least
}

// lifecycleDistribution counts accounts per stage label, taken verbatim
// (case-sensitive), with absent stages under "unknown".
func (c *Calculator) lifecycleDistribution(accounts []domain.Account) map[string]int {
	dist := make(map[string]int)
	for _, a := range accounts {
		dist[a.StageOrNotSet()]++
	}
	return dist
}

// peakActivityHours reports the busiest creation hours of day, top
// peakHours by count descending; ties resolve to the earlier hour.
func (c *Calculator) peakActivityHours(accounts []domain.Account) []domain.HourBucket {
	var hist [24]int
	for _, a := range accounts {
		if a.CreatedAt == nil {
			continue
		}
		hist[a.CreatedAt.Hour()]++
	}

	buckets := make([]domain.HourBucket, 0, 24)
	for h, n := range hist {
		if n > 0 {
			buckets = append(buckets, domain.HourBucket{Hour: h, Accounts: n})
		}
	}
	sort.SliceStable(buckets, func(a, b int) bool {
		if buckets[a].Accounts != buckets[b].Accounts {
			return buckets[a].Accounts > buckets[b].Accounts
		}
		return buckets[a].Hour < buckets[b].Hour
	})
	if len(buckets) > c.peakHours {
		buckets = buckets[:c.peakHours]
	}
	return buckets
}

// responseTime ranks representatives by lead count: top three fast, bottom
// two slow. The average is the fixed placeholder, flagged Estimated so no
// consumer mistakes it for telemetry.
func (c *Calculator) responseTime(byRep map[string]domain.RollupStats) domain.ResponseTimeMetrics {
	type repCount struct {
		name  string
		leads int
	}
	reps := make([]repCount, 0, len(byRep))
	for name, stats := range byRep {
		reps = append(reps, repCount{name: name, leads: stats.Accounts})
	}
	sort.Slice(reps, func(a, b int) bool {
		if reps[a].leads != reps[b].leads {
			return reps[a].leads > reps[b].leads
		}
		return reps[a].name < reps[b].name
	})

	metrics := domain.ResponseTimeMetrics{
		AvgHours:       placeholderAvgResponseHours,
		Estimated:      true,
		FastResponders: []string{},
		SlowResponders: []string{},
	}
	fast := 3
	if fast > len(reps) {
		fast = len(reps)
	}
	for _, r := range reps[:fast] {
		metrics.FastResponders = append(metrics.FastResponders, r.name)
	}
	slowFrom := len(reps) - 2
	if slowFrom < fast {
		slowFrom = fast
	}
	for _, r := range reps[slowFrom:] {
		metrics.SlowResponders = append(metrics.SlowResponders, r.name)
	}
	return metrics
}

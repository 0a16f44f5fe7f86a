// Package analytics computes the dashboard Snapshot from a collection of
// normalized accounts.
//
// # Design
//
// The Calculator is a pure function of its inputs: the same account
// multiset and the same reference instant always produce the same
// Snapshot. The reference instant is an explicit parameter — the engine
// never reads the system clock — so the 90-day recency window and the
// age-based risk labels are reproducible in tests. Callers that want
// wall-clock behavior pass time.Now() and accept that reruns differ.
//
// # Computations
//
// Each rollup lives in its own function and is individually testable:
// scalar totals, the fixed revenue bands, rep/brand/state rollups, the
// monthly and seasonal creation trends, ranked account lists, lifecycle
// distribution, traffic-source/campaign/landing-page attribution, lead
// health scoring, the peak-hour histogram, and the placeholder
// response-time ranking.
//
// # Failure semantics
//
// A record that cannot serve one computation (unparseable date, malformed
// URL, out-of-range sales value) is skipped for that computation only and
// still contributes everywhere else. No per-record problem aborts the
// snapshot.
//
// # Numeric semantics
//
// Monetary sums use float64 accumulation. On very large collections this
// permits small accumulation error; that is an accepted limitation of the
// dashboard, not a defect to compensate for here.
package analytics

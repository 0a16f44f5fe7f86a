package analytics

import (
	"regexp"

	"leadpulse/pkg/contracts/domain"
)

// stateRe matches a two-letter state code only when a US ZIP (optionally
// ZIP+4) anchors the end of the address, so incidental capitalized pairs
// earlier in the text never match.
var stateRe = regexp.MustCompile(`([A-Z]{2}),?\s+\d{5}(?:-\d{4})?\s*$`)

// ExtractState pulls the two-letter state code from a free-text address.
// Addresses without a trailing ZIP fall into the Unknown bucket.
func ExtractState(address string) string {
	m := stateRe.FindStringSubmatch(address)
	if m == nil {
		return domain.UnknownBucket
	}
	return m[1]
}

// stateRollup accumulates {count, revenue} per extracted state.
func (c *Calculator) stateRollup(accounts []domain.Account, sales salesValues) map[string]domain.RollupStats {
	byState := make(map[string]domain.RollupStats)
	for i, a := range accounts {
		addRollup(byState, ExtractState(a.Address), sales, i)
	}
	return byState
}

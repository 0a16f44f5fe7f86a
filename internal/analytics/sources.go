package analytics

import (
	"sort"
	"strings"

	"leadpulse/pkg/contracts/domain"
)

// Canonical traffic-source categories.
const (
	SourceOrganicSearch  = "Organic Search"
	SourcePaidSearch     = "Paid Search"
	SourceSocialMedia    = "Social Media"
	SourceEmailMarketing = "Email Marketing"
	SourceDirectTraffic  = "Direct Traffic"
	SourceReferral       = "Referral"
	SourceOffline        = "Offline"
)

// sourceRule maps keyword substrings to a canonical category.
type sourceRule struct {
	Category string
	Keywords []string
}

// sourceRules is the ordered rule list for source normalization:
// case-insensitive substring match, first rule wins. Order is part of the
// contract — "paid social" is Paid Search because paid outranks social.
var sourceRules = []sourceRule{
	{Category: SourceOrganicSearch, Keywords: []string{"organic", "seo", "google", "bing", "yahoo"}},
	{Category: SourcePaidSearch, Keywords: []string{"paid", "ppc", "cpc", "adwords", "sem"}},
	{Category: SourceSocialMedia, Keywords: []string{"social", "facebook", "linkedin", "twitter", "instagram"}},
	{Category: SourceEmailMarketing, Keywords: []string{"email", "newsletter", "drip"}},
	{Category: SourceDirectTraffic, Keywords: []string{"direct", "none", "typed"}},
	{Category: SourceReferral, Keywords: []string{"referral", "refer", "partner"}},
	{Category: SourceOffline, Keywords: []string{"offline", "event", "trade show", "print"}},
}

// skippedCampaign is the source's own placeholder for records without a
// real campaign; it never becomes a rollup key.
const skippedCampaign = "Unknown Campaign"

// NormalizeSource maps free-text acquisition source into a canonical
// category. Unmatched text passes through verbatim (trimmed); empty input
// becomes the Unknown bucket.
func NormalizeSource(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.UnknownBucket
	}
	lower := strings.ToLower(s)
	for _, rule := range sourceRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return s
}

// trafficSources aggregates leads, revenue, average deal size and SQL
// conversion per normalized source category, ordered by revenue descending.
func (c *Calculator) trafficSources(accounts []domain.Account, sales salesValues) []domain.SourceStats {
	type acc struct {
		leads   int
		revenue float64
		sqls    int
	}
	bySource := make(map[string]*acc)
	for i, a := range accounts {
		cat := NormalizeSource(a.Source())
		s, ok := bySource[cat]
		if !ok {
			s = &acc{}
			bySource[cat] = s
		}
		s.leads++
		if sales.valid[i] {
			s.revenue += sales.value[i]
		}
		if a.Stage == domain.StageSQL {
			s.sqls++
		}
	}

	stats := make([]domain.SourceStats, 0, len(bySource))
	for cat, s := range bySource {
		stats = append(stats, domain.SourceStats{
			Source:         cat,
			Leads:          s.leads,
			Revenue:        s.revenue,
			AvgDealSize:    s.revenue / float64(s.leads),
			ConversionRate: float64(s.sqls) / float64(s.leads) * 100,
		})
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].Revenue != stats[b].Revenue {
			return stats[a].Revenue > stats[b].Revenue
		}
		return stats[a].Source < stats[b].Source
	})
	return stats
}

// campaigns aggregates leads and revenue per attribution campaign, keyed by
// the last-touch campaign falling back to first-touch. Records without a
// real campaign are skipped for this rollup only.
func (c *Calculator) campaigns(accounts []domain.Account, sales salesValues) []domain.CampaignStats {
	type acc struct {
		leads   int
		revenue float64
	}
	byCampaign := make(map[string]*acc)
	for i, a := range accounts {
		if a.Attribution == nil {
			continue
		}
		campaign := strings.TrimSpace(a.Attribution.LastCampaign)
		if campaign == "" {
			campaign = strings.TrimSpace(a.Attribution.FirstCampaign)
		}
		if campaign == "" || campaign == skippedCampaign {
			continue
		}
		s, ok := byCampaign[campaign]
		if !ok {
			s = &acc{}
			byCampaign[campaign] = s
		}
		s.leads++
		if sales.valid[i] {
			s.revenue += sales.value[i]
		}
	}

	stats := make([]domain.CampaignStats, 0, len(byCampaign))
	for campaign, s := range byCampaign {
		stats = append(stats, domain.CampaignStats{
			Campaign: campaign,
			Leads:    s.leads,
			Revenue:  s.revenue,
		})
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].Leads != stats[b].Leads {
			return stats[a].Leads > stats[b].Leads
		}
		return stats[a].Campaign < stats[b].Campaign
	})
	return stats
}

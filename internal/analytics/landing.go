package analytics

import (
	"net/url"
	"sort"
	"strings"

	"leadpulse/pkg/contracts/domain"
)

// pageRule maps a path keyword to a named landing-page bucket.
type pageRule struct {
	Label   string
	Keyword string
}

// pageRules is the ordered classification list for landing-page paths:
// case-insensitive substring match against the URL path, first rule wins.
var pageRules = []pageRule{
	{Label: "Homepage", Keyword: "home"},
	{Label: "Product Pages", Keyword: "product"},
	{Label: "About", Keyword: "about"},
	{Label: "Contact", Keyword: "contact"},
	{Label: "Blog", Keyword: "blog"},
	{Label: "Pricing", Keyword: "pricing"},
	{Label: "Demo", Keyword: "demo"},
	{Label: "Case Studies", Keyword: "case-study"},
	{Label: "Resources", Keyword: "resource"},
}

// Truncation caps for unclassified bucket keys.
const (
	pathKeyLimit = 30
	rawKeyLimit  = 40
)

// ClassifyLandingPage reduces a first-visited URL to a bucket label. The
// root path is the homepage; classified paths get their rule's label;
// unclassified paths become their own truncated bucket. When the URL does
// not parse at all, the truncated raw string is the bucket. Empty input
// returns "" and the caller skips the record for this rollup.
func ClassifyLandingPage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return truncate(raw, rawKeyLimit)
	}
	path := u.Path
	if path == "" || path == "/" {
		return "Homepage"
	}
	lower := strings.ToLower(path)
	for _, rule := range pageRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Label
		}
	}
	return truncate(path, pathKeyLimit)
}

// truncate caps s at limit runes. Cutting on a rune boundary keeps
// multi-byte paths valid UTF-8 in the bucket key.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// landingPages aggregates leads, revenue and SQL conversion per classified
// landing page, ordered by leads descending. Accounts without a
// first-visited URL are skipped for this rollup only.
func (c *Calculator) landingPages(accounts []domain.Account, sales salesValues) []domain.PageStats {
	type acc struct {
		leads   int
		revenue float64
		sqls    int
	}
	byPage := make(map[string]*acc)
	for i, a := range accounts {
		if a.Attribution == nil {
			continue
		}
		page := ClassifyLandingPage(a.Attribution.FirstURL)
		if page == "" {
			continue
		}
		s, ok := byPage[page]
		if !ok {
			s = &acc{}
			byPage[page] = s
		}
		s.leads++
		if sales.valid[i] {
			s.revenue += sales.value[i]
		}
		if a.Stage == domain.StageSQL {
			s.sqls++
		}
	}

	stats := make([]domain.PageStats, 0, len(byPage))
	for page, s := range byPage {
		stats = append(stats, domain.PageStats{
			Page:           page,
			Leads:          s.leads,
			Revenue:        s.revenue,
			AvgDealSize:    s.revenue / float64(s.leads),
			SQLCount:       s.sqls,
			ConversionRate: float64(s.sqls) / float64(s.leads) * 100,
		})
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].Leads != stats[b].Leads {
			return stats[a].Leads > stats[b].Leads
		}
		return stats[a].Page < stats[b].Page
	})
	return stats
}

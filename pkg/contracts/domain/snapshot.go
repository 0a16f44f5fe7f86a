package domain

import (
	"time"
)

// Sentinels rendered at the presentation boundary. The aggregation core
// never compares against these strings; it works with optionals.
const (
	NotAvailable  = "N/A"
	UnknownBucket = "Unknown"
)

// DisplayDateFormat is the US-locale date format used by the dashboard.
const DisplayDateFormat = "1/2/2006"

// AccountView is the presentation form of an Account: optional fields are
// rendered with their display sentinels and dates are locale-formatted.
type AccountView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Sales          string `json:"sales"`
	EstimatedValue bool   `json:"estimated_value"`
	CreateDate     string `json:"create_date"`
	LastActivity   string `json:"last_activity"`
	Owner          string `json:"owner"`
	Stage          string `json:"stage"`
}

// View renders the account for display, applying sentinel formatting in one
// place so the rest of the pipeline stays sentinel-free.
func (a Account) View() AccountView {
	return AccountView{
		ID:             a.ID,
		Name:           a.Name,
		Address:        orSentinel(a.Address, NotAvailable),
		Sales:          orSentinel(a.SalesAmount, "0"),
		EstimatedValue: a.EstimatedValue,
		CreateDate:     formatDate(a.CreatedAt),
		LastActivity:   formatDate(a.LastActivity),
		Owner:          orSentinel(a.Owner, NotAvailable),
		Stage:          a.StageOrNotSet(),
	}
}

func orSentinel(s, sentinel string) string {
	if s == "" {
		return sentinel
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.Format(DisplayDateFormat)
}

// RevenueBand is one bucket of the revenue distribution. Bands are ordered
// and exclusive of the previous band's upper bound, inclusive of their own.
type RevenueBand struct {
	Label    string  `json:"label"`
	Accounts int     `json:"accounts"`
	Revenue  float64 `json:"revenue"`
}

// RollupStats is the keyed accumulator used by the rep, brand and state
// rollups. Entries are created lazily on first contribution, so a rollup
// never contains a key with zero accounts.
type RollupStats struct {
	Accounts int     `json:"accounts"`
	Revenue  float64 `json:"revenue"`
}

// MonthBucket is one month of the creation-date trend.
type MonthBucket struct {
	// Month is the bucket key: "2006-01" for the monthly trend, the month
	// name for the seasonal trend.
	Month    string  `json:"month"`
	Accounts int     `json:"accounts"`
	Revenue  float64 `json:"revenue"`
}

// SourceStats aggregates one canonical traffic-source category.
type SourceStats struct {
	Source         string  `json:"source"`
	Leads          int     `json:"leads"`
	Revenue        float64 `json:"revenue"`
	AvgDealSize    float64 `json:"avg_deal_size"`
	ConversionRate float64 `json:"conversion_rate"`
}

// CampaignStats aggregates one attribution campaign.
type CampaignStats struct {
	Campaign string  `json:"campaign"`
	Leads    int     `json:"leads"`
	Revenue  float64 `json:"revenue"`
}

// PageStats aggregates one landing-page bucket.
type PageStats struct {
	Page           string  `json:"page"`
	Leads          int     `json:"leads"`
	Revenue        float64 `json:"revenue"`
	AvgDealSize    float64 `json:"avg_deal_size"`
	SQLCount       int     `json:"sql_count"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Lead temperature labels derived from the health score.
const (
	TemperatureHot  = "Hot"
	TemperatureWarm = "Warm"
	TemperatureCool = "Cool"
	TemperatureCold = "Cold"
)

// Lead risk labels derived from account age.
const (
	RiskHigh    = "High Risk"
	RiskMedium  = "Medium Risk"
	RiskLow     = "Low Risk"
	RiskUnknown = "Unknown"
)

// LeadScore is the health score of a single account. Score is always in
// [0,100].
type LeadScore struct {
	AccountID   int64  `json:"account_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Temperature string `json:"temperature"`
	Risk        string `json:"risk"`
}

// HourBucket is one hour of the peak-activity histogram.
type HourBucket struct {
	Hour     int `json:"hour"`
	Accounts int `json:"accounts"`
}

// ResponseTimeMetrics ranks representatives by lead count. The average
// figure is a fixed placeholder, not telemetry; Estimated is always true so
// consumers cannot mistake it for a measurement.
type ResponseTimeMetrics struct {
	FastResponders []string `json:"fast_responders"`
	SlowResponders []string `json:"slow_responders"`
	AvgHours       float64  `json:"avg_hours"`
	Estimated      bool     `json:"estimated"`
}

// Snapshot is the complete, immutable aggregation result for one run: a
// pure function of the account collection and the reference instant it was
// computed against.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`

	// DataSource names the adapter that served this run: "crm_api" or
	// "csv_file".
	DataSource string `json:"data_source"`

	TotalAccounts       int     `json:"total_accounts"`
	TotalRevenue        float64 `json:"total_revenue"`
	AverageDealSize     float64 `json:"average_deal_size"`
	RecentActivityCount int     `json:"recent_activity_count"`

	RevenueDistribution []RevenueBand `json:"revenue_distribution"`

	SalesByRep   map[string]RollupStats `json:"sales_by_rep"`
	SalesByBrand map[string]RollupStats `json:"sales_by_brand"`
	SalesByState map[string]RollupStats `json:"sales_by_state"`

	LifecycleDistribution map[string]int `json:"lifecycle_distribution"`

	MonthlyTrend  []MonthBucket `json:"monthly_trend"`
	SeasonalTrend []MonthBucket `json:"seasonal_trend"`

	TopPerforming   []AccountView `json:"top_performing"`
	LeastPerforming []AccountView `json:"least_performing"`

	TrafficSources []SourceStats   `json:"traffic_sources"`
	Campaigns      []CampaignStats `json:"campaigns"`
	LandingPages   []PageStats     `json:"landing_pages"`

	LeadScores []LeadScore `json:"lead_scores"`
	HotLeads   int         `json:"hot_leads"`
	WarmLeads  int         `json:"warm_leads"`
	CoolLeads  int         `json:"cool_leads"`
	ColdLeads  int         `json:"cold_leads"`

	PeakHours []HourBucket `json:"peak_hours"`

	ResponseTime ResponseTimeMetrics `json:"response_time"`

	Accounts []AccountView `json:"accounts"`
}

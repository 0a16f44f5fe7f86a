package domain

import (
	"strings"
	"time"
)

// Lifecycle stage labels as they appear in CRM records. The set is open:
// stages outside this list are carried verbatim and aggregated under their
// own label.
const (
	StageLead        = "lead"
	StageSubscriber  = "subscriber"
	StageMQL         = "marketingqualifiedlead"
	StageSQL         = "salesqualifiedlead"
	StageCustomer    = "customer"
	StageOpportunity = "opportunity"
	StageUnknown     = "unknown"
)

// Attribution carries the marketing-origin metadata attached to an account.
// All string fields are raw source values; normalization into canonical
// traffic-source categories happens in the analytics engine.
type Attribution struct {
	OriginalSource string `json:"original_source,omitempty"`
	LatestSource   string `json:"latest_source,omitempty"`
	FirstCampaign  string `json:"first_campaign,omitempty"`
	LastCampaign   string `json:"last_campaign,omitempty"`
	FirstURL       string `json:"first_url,omitempty"`
	LastURL        string `json:"last_url,omitempty"`
	Visits         int    `json:"visits"`
	PageViews      int    `json:"page_views"`
}

// Account is the normalized per-lead record that is the unit of aggregation.
// Optional values are modeled as nil pointers / empty strings; the "N/A"
// sentinels the dashboard shows are rendered only at the presentation
// boundary (see AccountView).
type Account struct {
	// ID is unique within a single aggregation run. When the source record
	// carries no ID it is randomly assigned, so it must not be treated as a
	// stable identity across runs.
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Address is free text. Empty when no address components were present.
	Address string `json:"address,omitempty"`

	// SalesAmount is the source-formatted currency text (for example
	// "$12,345.67"). Magnitudes above MaxValidSalesValue are treated as
	// sentinel garbage: excluded from every numeric aggregate but retained
	// in the account list.
	SalesAmount string `json:"sales_amount"`

	// EstimatedValue marks SalesAmount as a lifecycle-stage heuristic
	// rather than measured revenue. Downstream consumers must not present
	// estimated amounts as actuals.
	EstimatedValue bool `json:"estimated_value"`

	CreatedAt    *time.Time `json:"created_at,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`

	// Owner is the owning representative's display name, empty when the
	// owner association could not be resolved.
	Owner string `json:"owner,omitempty"`

	Stage string `json:"stage"`

	Attribution *Attribution `json:"attribution,omitempty"`
}

// MaxValidSalesValue is the magnitude above which a sales value is treated
// as an invalid sentinel and skipped by every numeric aggregate.
const MaxValidSalesValue = 1e12

// StageOrNotSet returns the lifecycle stage, mapping an absent stage to
// StageUnknown. Labels are case-sensitive by contract; only emptiness is
// normalized here.
func (a Account) StageOrNotSet() string {
	if a.Stage == "" {
		return StageUnknown
	}
	return a.Stage
}

// Source returns the acquisition source to attribute this account to:
// the original source, falling back to the latest source. Empty when no
// attribution data exists.
func (a Account) Source() string {
	if a.Attribution == nil {
		return ""
	}
	if s := strings.TrimSpace(a.Attribution.OriginalSource); s != "" {
		return s
	}
	return strings.TrimSpace(a.Attribution.LatestSource)
}

// Contact is a raw CRM contact record as fetched by a source adapter,
// before transformation into an Account.
type Contact struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`

	// Company is the contact's own free-text company field, used when no
	// company association resolves.
	Company string `json:"company"`

	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`

	Stage string `json:"lifecyclestage"`

	// Amount is a real transaction amount when the CRM has one; empty for
	// qualification-stage records.
	Amount string `json:"amount"`

	CreatedAt    *time.Time `json:"createdate,omitempty"`
	LastActivity *time.Time `json:"lastactivitydate,omitempty"`

	CompanyID string `json:"company_id"`
	OwnerID   string `json:"owner_id"`

	Attribution *Attribution `json:"attribution,omitempty"`
}

// Company is a raw CRM company record looked up by association ID.
type Company struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`

	// TotalSales is the company-level lifetime sales text, if tracked.
	TotalSales string `json:"total_sales"`

	CreatedAt *time.Time `json:"createdate,omitempty"`
}

// Owner is a raw CRM owner (sales representative) record.
type Owner struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// FullName returns the owner's display name, trimmed. Empty when neither
// name part is set.
func (o Owner) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(o.FirstName) + " " + strings.TrimSpace(o.LastName))
}

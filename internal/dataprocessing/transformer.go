package dataprocessing

import (
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"leadpulse/pkg/contracts/domain"
)

// Stage value estimates, in whole dollars. These are deliberate business
// heuristics for qualification-stage records that carry no transaction
// amount; they are not measured revenue, and accounts valued this way are
// flagged with EstimatedValue so downstream consumers can tell.
// The ordering customer > SQL > MQL > lead > subscriber > unknown is part
// of the contract.
var stageEstimates = map[string]float64{
	domain.StageCustomer:   45000,
	domain.StageSQL:        25000,
	domain.StageMQL:        12000,
	domain.StageLead:       5000,
	domain.StageSubscriber: 1500,
}

// defaultStageEstimate covers unknown and unlisted stages.
const defaultStageEstimate = 500

// UnknownAccountName is the display name used when neither the company
// association nor the contact offers one.
const UnknownAccountName = "Unknown Account"

// Transformer maps raw source records into normalized accounts. It is a
// pure mapper: no side effects, no errors surfaced; missing associations
// silently degrade to absent optional fields.
type Transformer struct {
	logger *slog.Logger

	// randID assigns account IDs when the source record has none. Swappable
	// in tests for determinism.
	randID func() int64
}

// NewTransformer creates a transformer. A nil logger falls back to
// slog.Default.
func NewTransformer(logger *slog.Logger) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transformer{
		logger: logger.With(slog.String("component", "transformer")),
		randID: func() int64 { return rand.Int63n(1_000_000_000) },
	}
}

// TransformAll maps every contact through Transform.
func (t *Transformer) TransformAll(contacts []domain.Contact, companies map[string]domain.Company, owners map[string]domain.Owner) []domain.Account {
	accounts := make([]domain.Account, 0, len(contacts))
	for _, c := range contacts {
		accounts = append(accounts, t.Transform(c, companies, owners))
	}
	return accounts
}

// Transform builds one normalized Account from a contact and its company
// and owner lookups, keyed by association ID.
func (t *Transformer) Transform(contact domain.Contact, companies map[string]domain.Company, owners map[string]domain.Owner) domain.Account {
	company, hasCompany := companies[contact.CompanyID]
	if contact.CompanyID != "" && !hasCompany {
		t.logger.Debug("company association unresolved",
			slog.String("contact_id", contact.ID),
			slog.String("company_id", contact.CompanyID))
	}

	account := domain.Account{
		ID:           t.accountID(contact.ID),
		Name:         t.displayName(contact, company, hasCompany),
		Address:      t.address(contact, company, hasCompany),
		CreatedAt:    firstTime(contact.CreatedAt, company.CreatedAt),
		LastActivity: contact.LastActivity,
		Owner:        t.ownerName(contact, owners),
		Stage:        strings.TrimSpace(contact.Stage),
		Attribution:  contact.Attribution,
	}
	account.SalesAmount, account.EstimatedValue = t.salesAmount(contact, company, hasCompany, account.StageOrNotSet())
	return account
}

// accountID parses the source ID, assigning a random ID when it is absent
// or non-numeric. Random IDs are unique enough within one run but carry no
// cross-run identity.
func (t *Transformer) accountID(sourceID string) int64 {
	id := int64(0)
	for _, c := range sourceID {
		if c < '0' || c > '9' {
			id = -1
			break
		}
		id = id*10 + int64(c-'0')
	}
	if sourceID == "" || id < 0 {
		return t.randID()
	}
	return id
}

// displayName prefers the associated company name, then the contact's own
// company text, then the contact's name, then the Unknown sentinel.
func (t *Transformer) displayName(contact domain.Contact, company domain.Company, hasCompany bool) string {
	if hasCompany {
		if name := strings.TrimSpace(company.Name); name != "" {
			return name
		}
	}
	if name := strings.TrimSpace(contact.Company); name != "" {
		return name
	}
	if name := strings.TrimSpace(strings.TrimSpace(contact.FirstName) + " " + strings.TrimSpace(contact.LastName)); name != "" {
		return name
	}
	return UnknownAccountName
}

// address joins the non-empty components with ", ": street/city/state/zip
// from the company when one resolved, otherwise city/state/country from the
// contact. Empty results stay empty; the display sentinel is applied at the
// presentation boundary.
func (t *Transformer) address(contact domain.Contact, company domain.Company, hasCompany bool) string {
	var parts []string
	if hasCompany {
		parts = []string{company.Street, company.City, company.State, company.Zip}
	} else {
		parts = []string{contact.City, contact.State, contact.Country}
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// ownerName resolves the owning representative's display name, empty when
// the owner association is missing or carries no name.
func (t *Transformer) ownerName(contact domain.Contact, owners map[string]domain.Owner) string {
	owner, ok := owners[contact.OwnerID]
	if !ok {
		if contact.OwnerID != "" {
			t.logger.Debug("owner association unresolved",
				slog.String("contact_id", contact.ID),
				slog.String("owner_id", contact.OwnerID))
		}
		return ""
	}
	return owner.FullName()
}

// salesAmount picks the best available sales figure: the contact's real
// transaction amount, then the company's lifetime total, then the
// stage-keyed estimate. Only the estimate path sets the EstimatedValue
// flag.
func (t *Transformer) salesAmount(contact domain.Contact, company domain.Company, hasCompany bool, stage string) (string, bool) {
	if amount := strings.TrimSpace(contact.Amount); amount != "" {
		return amount, false
	}
	if hasCompany {
		if total := strings.TrimSpace(company.TotalSales); total != "" {
			return total, false
		}
	}
	// Canonical numeric text, not the compact display format, so the
	// estimate survives ParseCurrency unchanged.
	return strconv.FormatFloat(StageEstimate(stage), 'f', -1, 64), true
}

// StageEstimate returns the fixed monetary estimate for a lifecycle stage.
func StageEstimate(stage string) float64 {
	if v, ok := stageEstimates[stage]; ok {
		return v
	}
	return defaultStageEstimate
}

func firstTime(primary, secondary *time.Time) *time.Time {
	if primary != nil {
		return primary
	}
	return secondary
}

package source

import (
	"context"
	"errors"
	"time"

	"leadpulse/pkg/contracts/domain"
)

// Sentinel errors checked with errors.Is at fallback decision points.
var (
	// ErrMissingCredential means the remote adapter has no API token
	// configured. This is a hard configuration error, never a fallback
	// trigger.
	ErrMissingCredential = errors.New("source: missing CRM credential")

	// ErrNoQualifiedRecords means an adapter completed successfully but
	// none of the fetched records passed the qualification filter. The
	// fallback provider treats this as the signal to try the next adapter.
	ErrNoQualifiedRecords = errors.New("source: no qualified records")
)

// DateRange is an optional inclusive creation-date filter. Nil bounds are
// open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside the range. A nil t only passes
// a fully open range.
func (r DateRange) Contains(t *time.Time) bool {
	if t == nil {
		return r.Start == nil && r.End == nil
	}
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Dataset is one adapter's raw fetch output: qualified contacts plus the
// association lookups keyed by source ID.
type Dataset struct {
	Contacts  []domain.Contact
	Companies map[string]domain.Company
	Owners    map[string]domain.Owner
}

// Provider is one adapter in the fallback chain.
type Provider interface {
	// Fetch returns the qualified dataset for the range. An empty
	// qualified result is reported as ErrNoQualifiedRecords, not as a
	// zero-length success, so callers can distinguish it from transport
	// failures with errors.Is.
	Fetch(ctx context.Context, window DateRange) (*Dataset, error)

	// Name identifies the adapter in logs and in Result.Source.
	Name() string
}

// Result is the fallback provider's output: the dataset plus which
// adapter served it.
type Result struct {
	Dataset *Dataset
	Source  string
}

// qualifiedStages is the application-side lifecycle qualification filter:
// remote contacts without a recognized stage are not leads and are dropped
// before aggregation.
var qualifiedStages = map[string]bool{
	domain.StageLead:        true,
	domain.StageSubscriber:  true,
	domain.StageMQL:         true,
	domain.StageSQL:         true,
	domain.StageCustomer:    true,
	domain.StageOpportunity: true,
}

// qualify filters contacts by lifecycle stage and the optional creation
// date window.
func qualify(contacts []domain.Contact, window DateRange) []domain.Contact {
	out := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if !qualifiedStages[c.Stage] {
			continue
		}
		if (window.Start != nil || window.End != nil) && !window.Contains(c.CreatedAt) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Package api contains API contract definitions for LeadPulse.
// Version v1 represents the current stable API version.
package api

// DateRangeRequest is the optional inclusive creation-date range accepted by
// the dashboard and export endpoints. Both bounds are optional; when present
// they must be ISO dates.
type DateRangeRequest struct {
	Start string `json:"start" query:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" query:"end" validate:"omitempty,datetime=2006-01-02"`
}

// ExportRequest selects the report format for a snapshot export.
type ExportRequest struct {
	DateRangeRequest
	Format string `json:"format" validate:"required,oneof=csv xlsx json"`
}

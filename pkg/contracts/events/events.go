// Package events defines the WebSocket message contract pushed to dashboard
// clients.
package events

import "time"

// Message types sent over the refresh channel.
const (
	TypeConnection      = "connection"
	TypeRefreshComplete = "refresh:complete"
	TypeRefreshFailed   = "refresh:failed"
)

// Envelope wraps every message pushed to clients.
type Envelope struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// RefreshComplete is broadcast after a dashboard recomputation finishes.
type RefreshComplete struct {
	DataSource    string    `json:"data_source"`
	TotalAccounts int       `json:"total_accounts"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// RefreshFailed is broadcast when a recomputation could not produce a
// snapshot. Detail is a human-readable reason, never a raw error chain.
type RefreshFailed struct {
	Detail string `json:"detail"`
}

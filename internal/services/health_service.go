package services

import (
	"context"
	"log/slog"
	"time"

	"leadpulse/pkg/contracts"
)

// ClientCounter reports how many websocket clients are connected.
type ClientCounter interface {
	ClientCount() int
}

// HealthStatus is the response body of the health endpoint.
type HealthStatus struct {
	Status           string     `json:"status"`
	Version          string     `json:"version"`
	Uptime           string     `json:"uptime"`
	ConnectedClients int        `json:"connected_clients"`
	LastRefresh      *time.Time `json:"last_refresh,omitempty"`
	DataSource       string     `json:"data_source,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
}

// HealthService reports process status for readiness checks.
type HealthService struct {
	startedAt time.Time
	dashboard *DashboardService
	clients   ClientCounter
	logger    *slog.Logger
}

// NewHealthService creates a health service. Dashboard and clients may be
// nil; the corresponding fields are then omitted from the status.
func NewHealthService(dashboard *DashboardService, clients ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		startedAt: time.Now(),
		dashboard: dashboard,
		clients:   clients,
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Health returns the current process status. The service is "healthy" as
// soon as the process is up; a missing snapshot only means no refresh has
// run yet.
func (s *HealthService) Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Version:   contracts.Version,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}

	if s.clients != nil {
		status.ConnectedClients = s.clients.ClientCount()
	}

	if s.dashboard != nil {
		if snap, err := s.dashboard.Latest(); err == nil {
			status.LastRefresh = &snap.GeneratedAt
			status.DataSource = snap.DataSource
		}
	}

	return status
}

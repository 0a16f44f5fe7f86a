package http

import (
	"context"
	"time"

	"leadpulse/internal/services"
	"leadpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations consumed by the
// handlers. Tests substitute a stub implementation.
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context, start, end *time.Time) (*domain.Snapshot, error)
	Latest() (*domain.Snapshot, error)
}

// HealthServiceInterface defines the health operations consumed by the
// handlers.
type HealthServiceInterface interface {
	Health(ctx context.Context) *services.HealthStatus
}

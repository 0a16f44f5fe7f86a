package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"leadpulse/internal/analytics"
	"leadpulse/internal/dataprocessing"
	"leadpulse/internal/infrastructure"
	"leadpulse/internal/source"
	"leadpulse/pkg/contracts/domain"
	"leadpulse/pkg/contracts/events"
)

// SnapshotProvider is the slice of the source layer the dashboard needs.
type SnapshotProvider interface {
	Fetch(ctx context.Context, window source.DateRange) (*source.Result, error)
}

// RefreshNotifier receives refresh outcomes for push delivery to clients.
type RefreshNotifier interface {
	BroadcastRefreshComplete(rc events.RefreshComplete)
	BroadcastRefreshFailed(detail string)
}

// DashboardService runs the fetch -> transform -> aggregate pipeline and
// caches the most recent snapshot.
type DashboardService struct {
	provider    SnapshotProvider
	transformer *dataprocessing.Transformer
	calculator  *analytics.Calculator
	notifier    RefreshNotifier
	metrics     *infrastructure.AppMetrics
	logger      *slog.Logger

	// clock supplies the reference instant for aggregation. Tests pin it.
	clock func() time.Time

	mu   sync.RWMutex
	last *domain.Snapshot
}

// NewDashboardService wires the pipeline. The notifier and metrics may be
// nil; refreshes then run without push delivery or instrumentation.
func NewDashboardService(provider SnapshotProvider, notifier RefreshNotifier, metrics *infrastructure.AppMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dashboard_service"))

	return &DashboardService{
		provider:    provider,
		transformer: dataprocessing.NewTransformer(logger),
		calculator:  analytics.NewCalculator(logger),
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
		clock:       time.Now,
	}
}

// Snapshot fetches the qualified records inside the optional date window,
// normalizes them and aggregates a fresh snapshot. An empty dataset yields a
// valid empty snapshot; only a fetch failure returns an error.
func (s *DashboardService) Snapshot(ctx context.Context, start, end *time.Time) (*domain.Snapshot, error) {
	if start != nil && end != nil && start.After(*end) {
		return nil, ErrInvalidDateRange
	}

	began := s.clock()
	window := source.DateRange{Start: start, End: end}

	result, err := s.provider.Fetch(ctx, window)
	if err != nil {
		s.logger.ErrorContext(ctx, "refresh failed",
			slog.String("error", err.Error()))
		if s.metrics != nil {
			s.metrics.RecordRefreshFailure(ctx)
		}
		if s.notifier != nil {
			s.notifier.BroadcastRefreshFailed("data refresh failed")
		}
		return nil, fmt.Errorf("fetch dashboard data: %w", err)
	}

	accounts := s.transformer.TransformAll(result.Dataset.Contacts, result.Dataset.Companies, result.Dataset.Owners)

	snapshot := s.calculator.Snapshot(ctx, accounts, s.clock())
	snapshot.DataSource = result.Source

	s.mu.Lock()
	s.last = snapshot
	s.mu.Unlock()

	elapsed := s.clock().Sub(began)
	s.logger.InfoContext(ctx, "refresh complete",
		slog.String("data_source", result.Source),
		slog.Int("accounts", len(accounts)),
		slog.Duration("elapsed", elapsed))

	if s.metrics != nil {
		s.metrics.RecordRefresh(ctx, result.Source, len(accounts), elapsed)
	}
	if s.notifier != nil {
		s.notifier.BroadcastRefreshComplete(events.RefreshComplete{
			DataSource:    result.Source,
			TotalAccounts: snapshot.TotalAccounts,
			GeneratedAt:   snapshot.GeneratedAt,
		})
	}

	return snapshot, nil
}

// Latest returns the most recently computed snapshot without refetching.
func (s *DashboardService) Latest() (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, ErrSnapshotUnavailable
	}
	return s.last, nil
}

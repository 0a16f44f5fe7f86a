package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpulse/internal/source"
	"leadpulse/pkg/contracts/domain"
	"leadpulse/pkg/contracts/events"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubSource records the requested window and serves a canned result.
type stubSource struct {
	result *source.Result
	err    error
	window source.DateRange
	calls  int
}

func (s *stubSource) Fetch(_ context.Context, window source.DateRange) (*source.Result, error) {
	s.calls++
	s.window = window
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// stubNotifier captures refresh broadcasts.
type stubNotifier struct {
	completed []events.RefreshComplete
	failed    []string
}

func (n *stubNotifier) BroadcastRefreshComplete(rc events.RefreshComplete) {
	n.completed = append(n.completed, rc)
}

func (n *stubNotifier) BroadcastRefreshFailed(detail string) {
	n.failed = append(n.failed, detail)
}

func at(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func sampleDataset() *source.Dataset {
	return &source.Dataset{
		Contacts: []domain.Contact{
			{
				ID:        "101",
				FirstName: "Dana",
				LastName:  "Reyes",
				Company:   "Acme Widgets",
				Stage:     domain.StageCustomer,
				Amount:    "$12,000",
				CreatedAt: at("2025-05-01T09:30:00Z"),
				OwnerID:   "7",
			},
			{
				ID:        "102",
				FirstName: "Lee",
				LastName:  "Okafor",
				Stage:     domain.StageSQL,
				CreatedAt: at("2025-06-01T14:00:00Z"),
			},
		},
		Companies: map[string]domain.Company{},
		Owners: map[string]domain.Owner{
			"7": {ID: "7", FirstName: "Sam", LastName: "Porter"},
		},
	}
}

func newTestService(src SnapshotProvider, notifier RefreshNotifier) *DashboardService {
	svc := NewDashboardService(src, notifier, nil, testLogger())
	svc.clock = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestDashboardService_SnapshotHappyPath(t *testing.T) {
	src := &stubSource{result: &source.Result{Dataset: sampleDataset(), Source: "crm_api"}}
	notifier := &stubNotifier{}
	svc := newTestService(src, notifier)

	snap, err := svc.Snapshot(context.Background(), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "crm_api", snap.DataSource)
	assert.Equal(t, 2, snap.TotalAccounts)
	assert.Equal(t, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), snap.GeneratedAt)

	require.Len(t, notifier.completed, 1)
	assert.Equal(t, "crm_api", notifier.completed[0].DataSource)
	assert.Equal(t, 2, notifier.completed[0].TotalAccounts)
	assert.Empty(t, notifier.failed)
}

func TestDashboardService_PassesDateWindowToSource(t *testing.T) {
	src := &stubSource{result: &source.Result{Dataset: &source.Dataset{}, Source: "csv_file"}}
	svc := newTestService(src, nil)

	start := at("2025-01-01T00:00:00Z")
	end := at("2025-03-31T23:59:59Z")

	_, err := svc.Snapshot(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, start, src.window.Start)
	assert.Equal(t, end, src.window.End)
}

func TestDashboardService_InvalidDateRange(t *testing.T) {
	src := &stubSource{}
	svc := newTestService(src, nil)

	_, err := svc.Snapshot(context.Background(), at("2025-06-01T00:00:00Z"), at("2025-01-01T00:00:00Z"))
	require.ErrorIs(t, err, ErrInvalidDateRange)
	assert.Zero(t, src.calls)
}

func TestDashboardService_EmptyDatasetIsValidSnapshot(t *testing.T) {
	src := &stubSource{result: &source.Result{Dataset: &source.Dataset{}, Source: "csv_file"}}
	notifier := &stubNotifier{}
	svc := newTestService(src, notifier)

	snap, err := svc.Snapshot(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, snap.TotalAccounts)
	assert.Equal(t, "csv_file", snap.DataSource)
	require.Len(t, notifier.completed, 1)
	assert.Equal(t, 0, notifier.completed[0].TotalAccounts)
}

func TestDashboardService_FetchFailureNotifiesAndSurfaces(t *testing.T) {
	src := &stubSource{err: errors.New("CRM returned status 500")}
	notifier := &stubNotifier{}
	svc := newTestService(src, notifier)

	_, err := svc.Snapshot(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	assert.Empty(t, notifier.completed)
	require.Len(t, notifier.failed, 1)
	assert.Equal(t, "data refresh failed", notifier.failed[0])

	// A failed refresh must not leave a stale cache entry behind.
	_, err = svc.Latest()
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestDashboardService_LatestServesCachedSnapshot(t *testing.T) {
	src := &stubSource{result: &source.Result{Dataset: sampleDataset(), Source: "crm_api"}}
	svc := newTestService(src, nil)

	_, err := svc.Latest()
	require.ErrorIs(t, err, ErrSnapshotUnavailable)

	first, err := svc.Snapshot(context.Background(), nil, nil)
	require.NoError(t, err)

	cached, err := svc.Latest()
	require.NoError(t, err)
	assert.Same(t, first, cached)
	assert.Equal(t, 1, src.calls)
}

func TestHealthService_ReportsSnapshotAge(t *testing.T) {
	src := &stubSource{result: &source.Result{Dataset: sampleDataset(), Source: "crm_api"}}
	dashboard := newTestService(src, nil)
	health := NewHealthService(dashboard, nil, testLogger())

	status := health.Health(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Nil(t, status.LastRefresh)

	_, err := dashboard.Snapshot(context.Background(), nil, nil)
	require.NoError(t, err)

	status = health.Health(context.Background())
	require.NotNil(t, status.LastRefresh)
	assert.Equal(t, "crm_api", status.DataSource)
	assert.NotEmpty(t, status.Version)
}

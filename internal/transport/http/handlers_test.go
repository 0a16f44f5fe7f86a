package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "leadpulse/internal/errors"
	"leadpulse/internal/services"
	"leadpulse/internal/source"
	"leadpulse/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubDashboard implements DashboardServiceInterface for handler tests.
type stubDashboard struct {
	snap   *domain.Snapshot
	err    error
	latest *domain.Snapshot
	start  *time.Time
	end    *time.Time
}

func (s *stubDashboard) Snapshot(_ context.Context, start, end *time.Time) (*domain.Snapshot, error) {
	s.start, s.end = start, end
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

func (s *stubDashboard) Latest() (*domain.Snapshot, error) {
	if s.latest == nil {
		return nil, services.ErrSnapshotUnavailable
	}
	return s.latest, nil
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		GeneratedAt:   time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		DataSource:    "crm_api",
		TotalAccounts: 3,
		TotalRevenue:  42000,
		Accounts: []domain.AccountView{
			{ID: 1, Name: "Acme Widgets", Sales: "$42,000.00", Stage: "customer",
				Address: "N/A", CreateDate: "2025-06-01", LastActivity: "N/A", Owner: "N/A"},
		},
	}
}

func newDashboardServer(service DashboardServiceInterface) *httptest.Server {
	handler := NewDashboardHandler(service, testLogger(), apierrors.NewErrorHandler(testLogger(), false))
	r := chi.NewRouter()
	r.Mount("/api/dashboard", handler.Routes())
	return httptest.NewServer(r)
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	service := &stubDashboard{snap: testSnapshot()}
	srv := newDashboardServer(service)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/dashboard?start=2025-01-01&end=2025-06-30")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var snap domain.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "crm_api", snap.DataSource)
	assert.Equal(t, 3, snap.TotalAccounts)

	require.NotNil(t, service.start)
	require.NotNil(t, service.end)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *service.start)
	// The end bound is inclusive: the whole final day is covered.
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC).Add(24*time.Hour-time.Nanosecond), *service.end)
}

func TestDashboardHandler_RejectsMalformedDates(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad start format", "?start=06/01/2025"},
		{"bad end format", "?end=yesterday"},
		{"start after end", "?start=2025-06-01&end=2025-01-01"},
	}

	srv := newDashboardServer(&stubDashboard{snap: testSnapshot()})
	defer srv.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/dashboard" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
		})
	}
}

func TestDashboardHandler_FetchFailureIsBadGateway(t *testing.T) {
	srv := newDashboardServer(&stubDashboard{err: errors.New("CRM returned status 500")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestDashboardHandler_TypedSourceFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			"network failure is bad gateway",
			apierrors.NewNetworkError("CRM returned status 500", nil),
			http.StatusBadGateway,
			"/errors/source/fetch-failed",
		},
		{
			"storage failure is service unavailable",
			apierrors.NewStorageError("failed to open accounts file", errors.New("no such file")),
			http.StatusServiceUnavailable,
			"/errors/service-unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newDashboardServer(&stubDashboard{err: tt.err})
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/api/dashboard")
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var problem map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&problem))
			assert.Equal(t, tt.wantType, problem["type"])
		})
	}
}

func TestDashboardHandler_MissingCredentialIsServiceUnavailable(t *testing.T) {
	srv := newDashboardServer(&stubDashboard{err: source.ErrMissingCredential})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDashboardHandler_Latest(t *testing.T) {
	service := &stubDashboard{}
	srv := newDashboardServer(service)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/dashboard/latest")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	service.latest = testSnapshot()
	resp, err = http.Get(srv.URL + "/api/dashboard/latest")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func newExportServer(service DashboardServiceInterface) *httptest.Server {
	handler := NewExportHandler(service, nil, testLogger(), apierrors.NewErrorHandler(testLogger(), false))
	r := chi.NewRouter()
	r.Mount("/api/export", handler.Routes())
	return httptest.NewServer(r)
}

func TestExportHandler_CSV(t *testing.T) {
	srv := newExportServer(&stubDashboard{snap: testSnapshot()})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/export/csv")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "leadpulse_report_2025-06-15.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, string(body), "Acme Widgets")
}

func TestExportHandler_XLSXContentType(t *testing.T) {
	srv := newExportServer(&stubDashboard{snap: testSnapshot()})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/export/xlsx")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
}

func TestExportHandler_UnsupportedFormat(t *testing.T) {
	srv := newExportServer(&stubDashboard{snap: testSnapshot()})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/export/pdf")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportHandler_FetchFailure(t *testing.T) {
	srv := newExportServer(&stubDashboard{err: errors.New("connection refused")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/export/json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

// stubHealth implements HealthServiceInterface.
type stubHealth struct{ status *services.HealthStatus }

func (s *stubHealth) Health(context.Context) *services.HealthStatus { return s.status }

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(&stubHealth{status: &services.HealthStatus{
		Status:  "healthy",
		Version: "0.3.0",
	}}, testLogger())

	r := chi.NewRouter()
	r.Mount("/api/health", handler.Routes())
	r.Get("/api/version", handler.Version)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status services.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)

	vresp, err := http.Get(srv.URL + "/api/version")
	require.NoError(t, err)
	defer vresp.Body.Close()
	assert.Equal(t, http.StatusOK, vresp.StatusCode)
}

package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the service-level instruments recorded by the
// dashboard pipeline and the HTTP layer.
type AppMetrics struct {
	refreshTotal    metric.Int64Counter
	refreshFailures metric.Int64Counter
	refreshDuration metric.Float64Histogram
	accountsServed  metric.Int64Gauge
	exportsTotal    metric.Int64Counter
	httpRequests    metric.Int64Counter
	httpDuration    metric.Float64Histogram
}

// NewAppMetrics registers the instruments on the meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	refreshTotal, err := meter.Int64Counter(
		"dashboard_refresh_total",
		metric.WithDescription("Completed dashboard refreshes by data source"),
	)
	if err != nil {
		return nil, err
	}

	refreshFailures, err := meter.Int64Counter(
		"dashboard_refresh_failures_total",
		metric.WithDescription("Dashboard refreshes that ended in an error"),
	)
	if err != nil {
		return nil, err
	}

	refreshDuration, err := meter.Float64Histogram(
		"dashboard_refresh_duration_seconds",
		metric.WithDescription("End to end refresh duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	accountsServed, err := meter.Int64Gauge(
		"dashboard_accounts",
		metric.WithDescription("Accounts in the most recent snapshot"),
	)
	if err != nil {
		return nil, err
	}

	exportsTotal, err := meter.Int64Counter(
		"report_exports_total",
		metric.WithDescription("Report exports by format"),
	)
	if err != nil {
		return nil, err
	}

	httpRequests, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("HTTP requests by method, path and status"),
	)
	if err != nil {
		return nil, err
	}

	httpDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &AppMetrics{
		refreshTotal:    refreshTotal,
		refreshFailures: refreshFailures,
		refreshDuration: refreshDuration,
		accountsServed:  accountsServed,
		exportsTotal:    exportsTotal,
		httpRequests:    httpRequests,
		httpDuration:    httpDuration,
	}, nil
}

// RecordRefresh records one completed refresh.
func (m *AppMetrics) RecordRefresh(ctx context.Context, source string, accounts int, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("source", source))
	m.refreshTotal.Add(ctx, 1, attrs)
	m.refreshDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.accountsServed.Record(ctx, int64(accounts), attrs)
}

// RecordRefreshFailure records a refresh that surfaced an error.
func (m *AppMetrics) RecordRefreshFailure(ctx context.Context) {
	m.refreshFailures.Add(ctx, 1)
}

// RecordExport records one report export.
func (m *AppMetrics) RecordExport(ctx context.Context, format string) {
	m.exportsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}

// RecordHTTPRequest records one served request.
func (m *AppMetrics) RecordHTTPRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)
	m.httpRequests.Add(ctx, 1, attrs)
	m.httpDuration.Record(ctx, elapsed.Seconds(), attrs)
}

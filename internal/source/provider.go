package source

import (
	"context"
	"errors"
	"log/slog"
)

// FallbackProvider runs the primary adapter and switches to the secondary
// only when the primary finds no qualified records. Any other primary
// failure, missing credential included, is surfaced unchanged.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
	logger    *slog.Logger
}

// NewFallbackProvider composes the two-step fetch. The logger may be nil.
func NewFallbackProvider(primary, secondary Provider, logger *slog.Logger) *FallbackProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackProvider{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With(slog.String("component", "source_fallback")),
	}
}

// Fetch returns the first non-empty qualified dataset along with the name
// of the adapter that served it. When both adapters come up empty the
// result is a valid empty dataset, not an error: no data is not a failure.
func (p *FallbackProvider) Fetch(ctx context.Context, window DateRange) (*Result, error) {
	ds, err := p.primary.Fetch(ctx, window)
	if err == nil {
		return &Result{Dataset: ds, Source: p.primary.Name()}, nil
	}
	if !errors.Is(err, ErrNoQualifiedRecords) {
		return nil, err
	}

	p.logger.InfoContext(ctx, "primary source empty, falling back",
		slog.String("primary", p.primary.Name()),
		slog.String("secondary", p.secondary.Name()),
	)

	ds, err = p.secondary.Fetch(ctx, window)
	if err == nil {
		return &Result{Dataset: ds, Source: p.secondary.Name()}, nil
	}
	if errors.Is(err, ErrNoQualifiedRecords) {
		return &Result{Dataset: &Dataset{}, Source: p.secondary.Name()}, nil
	}
	return nil, err
}

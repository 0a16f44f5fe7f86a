package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"leadpulse/pkg/contracts/domain"
)

// Exporter persists every report format for one snapshot into the reports
// directory.
type Exporter struct {
	reportsDir string
	logger     *slog.Logger
}

// NewExporter creates an exporter writing into reportsDir.
func NewExporter(reportsDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		reportsDir: reportsDir,
		logger:     logger.With(slog.String("component", "exporter")),
	}
}

// WriteAll renders the accounts CSV, the snapshot JSON and the XLSX workbook
// concurrently and returns the written paths. The first failure cancels the
// remaining writers.
func (e *Exporter) WriteAll(ctx context.Context, snap *domain.Snapshot) ([]string, error) {
	if err := os.MkdirAll(e.reportsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}

	stamp := snap.GeneratedAt.Format("2006-01-02_150405")
	targets := []struct {
		name  string
		write func(io.Writer, *domain.Snapshot) error
	}{
		{fmt.Sprintf("leadpulse_accounts_%s.csv", stamp), WriteAccountsCSV},
		{fmt.Sprintf("leadpulse_snapshot_%s.json", stamp), WriteSnapshotJSON},
		{fmt.Sprintf("leadpulse_report_%s.xlsx", stamp), WriteWorkbook},
	}

	g, ctx := errgroup.WithContext(ctx)
	paths := make([]string, len(targets))

	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(e.reportsDir, target.name)
			if err := e.writeFile(path, snap, target.write); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(paths)
	e.logger.InfoContext(ctx, "reports written",
		slog.String("reports_dir", e.reportsDir),
		slog.Int("files", len(paths)))
	return paths, nil
}

func (e *Exporter) writeFile(path string, snap *domain.Snapshot, write func(io.Writer, *domain.Snapshot) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(file, snap); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}

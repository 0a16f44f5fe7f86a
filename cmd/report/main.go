package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"leadpulse/internal/config"
	"leadpulse/internal/exporter"
	"leadpulse/internal/infrastructure"
	"leadpulse/internal/services"
	"leadpulse/internal/source"
)

const dateLayout = "2006-01-02"

func main() {
	outputDir := flag.String("out", "", "output directory for report files (defaults to the configured reports directory)")
	accountsFile := flag.String("csv", "", "accounts CSV file to read instead of the configured path")
	startDate := flag.String("start", "", "inclusive start of the creation-date window (YYYY-MM-DD)")
	endDate := flag.String("end", "", "inclusive end of the creation-date window (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	start, end, err := parseWindow(*startDate, *endDate)
	if err != nil {
		logger.Error("Invalid date window", "error", err)
		os.Exit(1)
	}

	csvPath := cfg.Paths.AccountsFilePath()
	if *accountsFile != "" {
		csvPath = *accountsFile
	}

	remote := source.NewRemoteClient(source.RemoteConfig{
		BaseURL:  cfg.CRM.BaseURL,
		Token:    cfg.CRM.APIToken,
		PageSize: cfg.CRM.PageSize,
		MaxPages: cfg.CRM.MaxPages,
	}, logger)
	file := source.NewFileSource(csvPath, logger)
	provider := source.NewFallbackProvider(remote, file, logger)

	service := services.NewDashboardService(provider, nil, nil, logger)

	logger.Info("Computing dashboard snapshot",
		"start", *startDate,
		"end", *endDate,
		"accounts_file", csvPath)

	// A generated trace ID correlates this run's log lines the same way a
	// request ID does in the server.
	ctx := infrastructure.EnsureTraceID(context.Background())
	snapshot, err := service.Snapshot(ctx, start, end)
	if err != nil {
		logger.Error("Failed to compute snapshot", "error", err)
		os.Exit(1)
	}
	logger.Info("Computed snapshot",
		"accounts", snapshot.TotalAccounts,
		"data_source", snapshot.DataSource)

	reportsDir := cfg.Paths.ReportsDir
	if *outputDir != "" {
		reportsDir = *outputDir
	}

	paths, err := exporter.NewExporter(reportsDir, logger).WriteAll(ctx, snapshot)
	if err != nil {
		logger.Error("Failed to write report files", "error", err)
		os.Exit(1)
	}

	logger.Info("Report generated successfully", "files", len(paths))
	for _, p := range paths {
		fmt.Println(p)
	}
}

// parseWindow parses optional date flags. The end bound is widened to the
// last instant of its day so the window is inclusive.
func parseWindow(startStr, endStr string) (start, end *time.Time, err error) {
	if startStr != "" {
		t, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, nil, fmt.Errorf("parse start date %q: %w", startStr, err)
		}
		start = &t
	}
	if endStr != "" {
		t, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, nil, fmt.Errorf("parse end date %q: %w", endStr, err)
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("start date %s is after end date %s", startStr, endStr)
	}
	return start, end, nil
}

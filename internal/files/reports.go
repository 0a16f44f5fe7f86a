package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// reportPrefix matches the file names the exporter produces.
const reportPrefix = "leadpulse_"

// reportFormats maps a file extension to the format name reported to
// clients.
var reportFormats = map[string]string{
	".csv":  "csv",
	".json": "json",
	".xlsx": "xlsx",
}

// ReportFile describes one generated report on disk.
type ReportFile struct {
	Name    string    `json:"name"`
	Format  string    `json:"format"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified_at"`
}

// Store lists generated report files in the reports directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: logger.With(slog.String("component", "files.store")),
	}
}

// List returns all generated reports, newest first. A missing reports
// directory is an empty listing, not an error.
func (s *Store) List() ([]ReportFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reports directory %s: %w", s.dir, err)
	}

	var reports []ReportFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		format, ok := reportFormats[strings.ToLower(filepath.Ext(name))]
		if !ok || !strings.HasPrefix(name, reportPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportFile{
			Name:    name,
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].ModTime.Equal(reports[j].ModTime) {
			return reports[i].ModTime.After(reports[j].ModTime)
		}
		return reports[i].Name < reports[j].Name
	})
	return reports, nil
}

// Latest returns the most recent report in the given format.
func (s *Store) Latest(format string) (ReportFile, bool, error) {
	reports, err := s.List()
	if err != nil {
		return ReportFile{}, false, err
	}
	for _, r := range reports {
		if r.Format == format {
			return r, true, nil
		}
	}
	return ReportFile{}, false, nil
}

// Open returns a handle on a named report for download. The name is
// resolved strictly inside the reports directory.
func (s *Store) Open(name string) (*os.File, error) {
	if name != filepath.Base(name) || !strings.HasPrefix(name, reportPrefix) {
		return nil, fmt.Errorf("invalid report name %q", name)
	}
	if _, ok := reportFormats[strings.ToLower(filepath.Ext(name))]; !ok {
		return nil, fmt.Errorf("invalid report name %q", name)
	}
	return os.Open(filepath.Join(s.dir, name))
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default directory layout, relative to the working directory unless
// overridden with absolute paths.
const (
	defaultDataDir      = "data"
	defaultReportsDir   = "data/reports"
	defaultLogsDir      = "logs"
	defaultAccountsFile = "accounts.csv"
)

// PathsConfig contains the resolved filesystem layout: where the CSV
// fallback lives, where reports are written, and where logs go.
type PathsConfig struct {
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	AccountsFile string `yaml:"accounts_file" envconfig:"ACCOUNTS_FILE"`
}

// resolve fills defaults and makes every directory absolute.
func (p *PathsConfig) resolve() {
	if p.DataDir == "" {
		p.DataDir = defaultDataDir
	}
	if p.ReportsDir == "" {
		p.ReportsDir = defaultReportsDir
	}
	if p.LogsDir == "" {
		p.LogsDir = defaultLogsDir
	}
	if p.AccountsFile == "" {
		p.AccountsFile = defaultAccountsFile
	}
	p.DataDir = absolute(p.DataDir)
	p.ReportsDir = absolute(p.ReportsDir)
	p.LogsDir = absolute(p.LogsDir)
}

// EnsureDirectories creates the directory layout if it is missing.
func (p *PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// AccountsFilePath returns the CSV fallback file location: an absolute
// AccountsFile is honored as-is, a relative one lives under DataDir.
func (p *PathsConfig) AccountsFilePath() string {
	if filepath.IsAbs(p.AccountsFile) {
		return p.AccountsFile
	}
	return filepath.Join(p.DataDir, p.AccountsFile)
}

// LogFilePath resolves a log file name against LogsDir.
func (p *PathsConfig) LogFilePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.LogsDir, filepath.Base(name))
}

func absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

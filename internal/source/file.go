package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"leadpulse/internal/dataprocessing"
	apierrors "leadpulse/internal/errors"
	"leadpulse/pkg/contracts/domain"
)

// Stage synthesis thresholds for file records, which carry a sales amount
// but no lifecycle stage of their own.
const (
	stageCustomerThreshold = 25000
	stageSQLThreshold      = 10000
	stageMQLThreshold      = 5000
)

// csvDateLayouts are tried in order when parsing file dates.
var csvDateLayouts = []string{time.RFC3339, "2006-01-02", "1/2/2006"}

// FileSource reads contacts from a local CSV export. The first row names
// the columns; rows shorter than the header are skipped.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource returns a CSV adapter for the file at path. The logger may
// be nil.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:   path,
		logger: logger.With(slog.String("component", "source_file")),
	}
}

// Name implements Provider.
func (f *FileSource) Name() string { return "csv_file" }

// Fetch implements Provider. The same qualification and date filtering as
// the remote adapter applies; the lifecycle stage is synthesized from the
// sales amount since CSV exports do not carry one.
func (f *FileSource) Fetch(ctx context.Context, window DateRange) (*Dataset, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, apierrors.NewStorageError("failed to open accounts file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apierrors.NewParsingError("failed to read header row", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var (
		contacts []domain.Contact
		owners   = make(map[string]domain.Owner)
		skipped  int
		line     int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apierrors.NewParsingError(fmt.Sprintf("failed to read row %d", line+2), err)
		}
		line++
		if len(row) < len(header) {
			skipped++
			continue
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		amount := field("amount")
		contact := domain.Contact{
			ID:           field("id"),
			FirstName:    field("firstname"),
			LastName:     field("lastname"),
			Company:      field("company"),
			City:         field("city"),
			State:        field("state"),
			Country:      field("country"),
			Amount:       amount,
			Stage:        synthesizeStage(amount),
			CreatedAt:    parseCSVDate(field("createdate")),
			LastActivity: parseCSVDate(field("lastactivitydate")),
		}

		if owner := field("owner"); owner != "" {
			contact.OwnerID = owner
			if _, done := owners[owner]; !done {
				owners[owner] = splitOwnerName(owner)
			}
		}

		if attr := rowAttribution(field); attr != nil {
			contact.Attribution = attr
		}
		contacts = append(contacts, contact)
	}

	qualified := qualify(contacts, window)
	f.logger.InfoContext(ctx, "accounts file read",
		slog.String("path", f.path),
		slog.Int("rows", line),
		slog.Int("skipped", skipped),
		slog.Int("qualified", len(qualified)),
	)
	if len(qualified) == 0 {
		return nil, ErrNoQualifiedRecords
	}

	return &Dataset{
		Contacts:  qualified,
		Companies: map[string]domain.Company{},
		Owners:    owners,
	}, nil
}

// synthesizeStage maps a sales amount onto a lifecycle stage. Every file
// record gets a recognized stage so a populated file always qualifies.
func synthesizeStage(amount string) string {
	v := dataprocessing.ParseCurrency(amount)
	switch {
	case v >= stageCustomerThreshold:
		return domain.StageCustomer
	case v >= stageSQLThreshold:
		return domain.StageSQL
	case v >= stageMQLThreshold:
		return domain.StageMQL
	case v > 0:
		return domain.StageLead
	default:
		return domain.StageSubscriber
	}
}

// rowAttribution assembles the optional attribution bundle; nil when the
// row carries none of its columns.
func rowAttribution(field func(string) string) *domain.Attribution {
	attr := domain.Attribution{
		OriginalSource: field("original_source"),
		LatestSource:   field("latest_source"),
		FirstCampaign:  field("first_campaign"),
		LastCampaign:   field("last_campaign"),
		FirstURL:       field("first_url"),
		LastURL:        field("last_url"),
	}
	attr.Visits, _ = strconv.Atoi(field("visits"))
	attr.PageViews, _ = strconv.Atoi(field("pageviews"))
	if attr == (domain.Attribution{}) {
		return nil
	}
	return &attr
}

// splitOwnerName turns a full-name column into an Owner record keyed by
// the name itself.
func splitOwnerName(name string) domain.Owner {
	first, last, _ := strings.Cut(name, " ")
	return domain.Owner{ID: name, FirstName: first, LastName: last}
}

func parseCSVDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

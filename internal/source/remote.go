package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apierrors "leadpulse/internal/errors"
	"leadpulse/pkg/contracts/domain"
)

// Remote fetch bounds. The page cap keeps one refresh from iterating an
// arbitrarily large CRM dataset.
const (
	DefaultPageSize = 100
	DefaultMaxPages = 10

	defaultRequestTimeout = 30 * time.Second
	defaultRequestsPerSec = 10
)

// RemoteConfig configures the CRM REST adapter.
type RemoteConfig struct {
	BaseURL  string
	Token    string
	PageSize int
	MaxPages int
}

// RemoteClient fetches contacts from the CRM search API and resolves their
// company and owner associations with sequential per-ID lookups.
type RemoteClient struct {
	cfg        RemoteConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewRemoteClient returns a CRM adapter. The logger may be nil.
func NewRemoteClient(cfg RemoteConfig, logger *slog.Logger) *RemoteClient {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &RemoteClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSec), 1),
		logger:     logger.With(slog.String("component", "source_remote")),
	}
}

// Name implements Provider.
func (c *RemoteClient) Name() string { return "crm_api" }

// searchRequest is the contact search body. The date filter is pushed to
// the server when a window is given; qualification still runs locally.
type searchRequest struct {
	Limit        int    `json:"limit"`
	After        string `json:"after,omitempty"`
	CreatedAfter string `json:"created_after,omitempty"`
	CreatedUntil string `json:"created_until,omitempty"`
}

type searchResponse struct {
	Results []domain.Contact `json:"results"`
	Paging  *struct {
		Next struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging,omitempty"`
}

// Fetch implements Provider. A missing token fails with
// ErrMissingCredential before any request goes out. Transport or HTTP
// status failures during contact paging are hard errors; failed company or
// owner lookups only degrade that association.
func (c *RemoteClient) Fetch(ctx context.Context, window DateRange) (*Dataset, error) {
	if strings.TrimSpace(c.cfg.Token) == "" {
		return nil, ErrMissingCredential
	}

	started := time.Now()
	contacts, pages, err := c.searchContacts(ctx, window)
	if err != nil {
		return nil, err
	}

	qualified := qualify(contacts, window)
	c.logger.InfoContext(ctx, "contact search complete",
		slog.Int("fetched", len(contacts)),
		slog.Int("qualified", len(qualified)),
		slog.Int("pages", pages),
		slog.Duration("elapsed", time.Since(started)),
	)
	if len(qualified) == 0 {
		return nil, ErrNoQualifiedRecords
	}

	ds := &Dataset{
		Contacts:  qualified,
		Companies: c.lookupCompanies(ctx, qualified),
		Owners:    c.lookupOwners(ctx, qualified),
	}
	return ds, nil
}

// searchContacts pages through the search endpoint until the cursor is
// exhausted or the page cap is reached.
func (c *RemoteClient) searchContacts(ctx context.Context, window DateRange) ([]domain.Contact, int, error) {
	var (
		contacts []domain.Contact
		after    string
		pages    int
	)
	for pages < c.cfg.MaxPages {
		body := searchRequest{Limit: c.cfg.PageSize, After: after}
		if window.Start != nil {
			body.CreatedAfter = window.Start.Format(time.RFC3339)
		}
		if window.End != nil {
			body.CreatedUntil = window.End.Format(time.RFC3339)
		}

		var page searchResponse
		if err := c.call(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", body, &page); err != nil {
			return nil, pages, fmt.Errorf("contact search page %d: %w", pages+1, err)
		}
		pages++
		contacts = append(contacts, page.Results...)

		if page.Paging == nil || page.Paging.Next.After == "" {
			break
		}
		after = page.Paging.Next.After
	}
	return contacts, pages, nil
}

// lookupCompanies resolves the distinct company associations one at a
// time. A failed lookup is logged and the association stays missing.
func (c *RemoteClient) lookupCompanies(ctx context.Context, contacts []domain.Contact) map[string]domain.Company {
	companies := make(map[string]domain.Company)
	for _, contact := range contacts {
		id := strings.TrimSpace(contact.CompanyID)
		if id == "" {
			continue
		}
		if _, done := companies[id]; done {
			continue
		}
		var company domain.Company
		if err := c.call(ctx, http.MethodGet, "/crm/v3/objects/companies/"+id, nil, &company); err != nil {
			c.logger.WarnContext(ctx, "company lookup failed",
				slog.String("company_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		companies[id] = company
	}
	return companies
}

func (c *RemoteClient) lookupOwners(ctx context.Context, contacts []domain.Contact) map[string]domain.Owner {
	owners := make(map[string]domain.Owner)
	for _, contact := range contacts {
		id := strings.TrimSpace(contact.OwnerID)
		if id == "" {
			continue
		}
		if _, done := owners[id]; done {
			continue
		}
		var owner domain.Owner
		if err := c.call(ctx, http.MethodGet, "/crm/v3/owners/"+id, nil, &owner); err != nil {
			c.logger.WarnContext(ctx, "owner lookup failed",
				slog.String("owner_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		owners[id] = owner
	}
	return owners
}

// call performs one paced, authenticated JSON round trip.
func (c *RemoteClient) call(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierrors.NewNetworkError("CRM request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierrors.NewNetworkError("failed to read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return apierrors.NewNetworkError(
			fmt.Sprintf("CRM returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))), nil).
			WithContext("status", resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apierrors.NewParsingError("failed to parse response", err)
	}
	return nil
}

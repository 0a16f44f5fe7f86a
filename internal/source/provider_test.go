package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpulse/pkg/contracts/domain"
)

// stubProvider scripts one adapter's outcome.
type stubProvider struct {
	name    string
	dataset *Dataset
	err     error
	calls   int
}

func (s *stubProvider) Fetch(context.Context, DateRange) (*Dataset, error) {
	s.calls++
	return s.dataset, s.err
}

func (s *stubProvider) Name() string { return s.name }

func oneContactDataset() *Dataset {
	return &Dataset{
		Contacts:  []domain.Contact{{ID: "1", FirstName: "Ada", Stage: domain.StageLead}},
		Companies: map[string]domain.Company{},
		Owners:    map[string]domain.Owner{},
	}
}

func TestFallbackProvider_PrimaryServesWhenPopulated(t *testing.T) {
	primary := &stubProvider{name: "crm_api", dataset: oneContactDataset()}
	secondary := &stubProvider{name: "csv_file"}
	p := NewFallbackProvider(primary, secondary, nil)

	res, err := p.Fetch(context.Background(), DateRange{})

	require.NoError(t, err)
	assert.Equal(t, "crm_api", res.Source)
	assert.Len(t, res.Dataset.Contacts, 1)
	assert.Zero(t, secondary.calls, "secondary must not run when primary has data")
}

func TestFallbackProvider_EmptyPrimaryFallsBack(t *testing.T) {
	primary := &stubProvider{name: "crm_api", err: ErrNoQualifiedRecords}
	secondary := &stubProvider{name: "csv_file", dataset: oneContactDataset()}
	p := NewFallbackProvider(primary, secondary, nil)

	res, err := p.Fetch(context.Background(), DateRange{})

	require.NoError(t, err)
	assert.Equal(t, "csv_file", res.Source)
	assert.Len(t, res.Dataset.Contacts, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestFallbackProvider_HardErrorNeverFallsBack(t *testing.T) {
	boom := errors.New("connection refused")
	primary := &stubProvider{name: "crm_api", err: boom}
	secondary := &stubProvider{name: "csv_file", dataset: oneContactDataset()}
	p := NewFallbackProvider(primary, secondary, nil)

	_, err := p.Fetch(context.Background(), DateRange{})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, secondary.calls, "transport failures must surface, not fall back")
}

func TestFallbackProvider_MissingCredentialSurfaces(t *testing.T) {
	primary := &stubProvider{name: "crm_api", err: ErrMissingCredential}
	secondary := &stubProvider{name: "csv_file", dataset: oneContactDataset()}
	p := NewFallbackProvider(primary, secondary, nil)

	_, err := p.Fetch(context.Background(), DateRange{})

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Zero(t, secondary.calls)
}

func TestFallbackProvider_BothEmptyIsValidNoData(t *testing.T) {
	primary := &stubProvider{name: "crm_api", err: ErrNoQualifiedRecords}
	secondary := &stubProvider{name: "csv_file", err: ErrNoQualifiedRecords}
	p := NewFallbackProvider(primary, secondary, nil)

	res, err := p.Fetch(context.Background(), DateRange{})

	require.NoError(t, err)
	assert.Empty(t, res.Dataset.Contacts)
	assert.Equal(t, "csv_file", res.Source)
}

func TestFallbackProvider_SecondaryHardErrorSurfaces(t *testing.T) {
	boom := errors.New("no such file")
	primary := &stubProvider{name: "crm_api", err: ErrNoQualifiedRecords}
	secondary := &stubProvider{name: "csv_file", err: boom}
	p := NewFallbackProvider(primary, secondary, nil)

	_, err := p.Fetch(context.Background(), DateRange{})
	assert.ErrorIs(t, err, boom)
}

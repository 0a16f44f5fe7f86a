package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadpulse/pkg/contracts/domain"
)

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"organic search", SourceOrganicSearch},
		{"GOOGLE", SourceOrganicSearch},
		{"seo campaign", SourceOrganicSearch},
		{"paid search", SourcePaidSearch},
		{"PPC - brand", SourcePaidSearch},
		{"paid social", SourcePaidSearch}, // paid rule precedes social
		{"facebook ads", SourceSocialMedia},
		{"LinkedIn", SourceSocialMedia},
		{"email blast", SourceEmailMarketing},
		{"weekly newsletter", SourceEmailMarketing},
		{"direct", SourceDirectTraffic},
		{"(none)", SourceDirectTraffic},
		{"partner referral", SourceReferral},
		{"trade show", SourceOffline},
		{"", domain.UnknownBucket},
		{"   ", domain.UnknownBucket},
		{"carrier pigeon", "carrier pigeon"}, // unmatched text passes verbatim
		{"  skywriting  ", "skywriting"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSource(tt.raw))
		})
	}
}

func attributed(id int64, sales, origSource, lastCampaign, firstURL string, stage string) domain.Account {
	return domain.Account{
		ID:          id,
		Name:        "A",
		SalesAmount: sales,
		Stage:       stage,
		Attribution: &domain.Attribution{
			OriginalSource: origSource,
			LastCampaign:   lastCampaign,
			FirstURL:       firstURL,
		},
	}
}

func TestTrafficSources_Rollup(t *testing.T) {
	c := NewCalculator(nil)
	accounts := []domain.Account{
		attributed(1, "1000", "organic search", "", "", domain.StageSQL),
		attributed(2, "3000", "google", "", "", domain.StageLead),
		attributed(3, "500", "facebook", "", "", domain.StageLead),
		{ID: 4, Name: "NoAttr", SalesAmount: "50"}, // no attribution at all
	}

	snap := c.Snapshot(context.Background(), accounts, asOf)

	require.Len(t, snap.TrafficSources, 3)
	// Revenue descending.
	organic := snap.TrafficSources[0]
	assert.Equal(t, SourceOrganicSearch, organic.Source)
	assert.Equal(t, 2, organic.Leads)
	assert.InDelta(t, 4000.0, organic.Revenue, 1e-9)
	assert.InDelta(t, 2000.0, organic.AvgDealSize, 1e-9)
	assert.InDelta(t, 50.0, organic.ConversionRate, 1e-9)

	social := snap.TrafficSources[1]
	assert.Equal(t, SourceSocialMedia, social.Source)
	assert.Zero(t, social.ConversionRate)

	// The attribution-less record still participates, under Unknown.
	assert.Equal(t, domain.UnknownBucket, snap.TrafficSources[2].Source)
}

func TestCampaigns_FallbackAndSkips(t *testing.T) {
	c := NewCalculator(nil)
	accounts := []domain.Account{
		attributed(1, "100", "", "Spring Launch", "", ""),
		attributed(2, "200", "", "Spring Launch", "", ""),
		// Last-touch empty, first-touch used instead.
		{ID: 3, Name: "A", SalesAmount: "300", Attribution: &domain.Attribution{FirstCampaign: "Webinar Series"}},
		// Placeholder campaigns never become buckets.
		attributed(4, "999", "", "Unknown Campaign", "", ""),
		attributed(5, "999", "", "   ", "", ""),
		{ID: 6, Name: "NoAttr", SalesAmount: "999"},
	}

	snap := c.Snapshot(context.Background(), accounts, asOf)

	require.Len(t, snap.Campaigns, 2)
	assert.Equal(t, "Spring Launch", snap.Campaigns[0].Campaign)
	assert.Equal(t, 2, snap.Campaigns[0].Leads)
	assert.InDelta(t, 300.0, snap.Campaigns[0].Revenue, 1e-9)
	assert.Equal(t, "Webinar Series", snap.Campaigns[1].Campaign)
}

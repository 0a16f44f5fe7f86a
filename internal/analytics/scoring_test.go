package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"leadpulse/pkg/contracts/domain"
)

func TestScoreAccount(t *testing.T) {
	created := asOf.AddDate(0, 0, -10)
	tests := []struct {
		name    string
		account domain.Account
		want    int
	}{
		{
			name:    "bare account sits exactly at base",
			account: domain.Account{ID: 1, Name: "Bare"},
			want:    50,
		},
		{
			name: "referral source",
			account: domain.Account{
				ID: 2, Name: "A",
				Attribution: &domain.Attribution{OriginalSource: "partner referral"},
			},
			want: 70,
		},
		{
			name: "referral outranks organic when both match",
			account: domain.Account{
				ID: 8, Name: "A",
				Attribution: &domain.Attribution{OriginalSource: "organic referral"},
			},
			want: 70, // referral bonus wins over the organic one
		},
		{
			name: "google-only text counts as organic",
			account: domain.Account{
				ID: 9, Name: "A",
				Attribution: &domain.Attribution{OriginalSource: "google"},
			},
			want: 65,
		},
		{
			name: "organic plus medium visits",
			account: domain.Account{
				ID: 3, Name: "A",
				Attribution: &domain.Attribution{OriginalSource: "organic search", Visits: 3},
			},
			want: 75,
		},
		{
			name: "visit thresholds are exclusive",
			account: domain.Account{
				ID: 4, Name: "A",
				Attribution: &domain.Attribution{Visits: 5},
			},
			want: 60, // 5 visits earn the medium bonus, not the high one
		},
		{
			name: "everything stacks but clamps at 100",
			account: domain.Account{
				ID: 5, Name: "A", Stage: domain.StageCustomer,
				Attribution: &domain.Attribution{OriginalSource: "referral", Visits: 12},
			},
			want: 100, // 50+20+15+30 = 115, clamped
		},
		{
			name: "sql stage",
			account: domain.Account{
				ID: 6, Name: "A", Stage: domain.StageSQL, CreatedAt: &created,
			},
			want: 75,
		},
		{
			name: "paid search with mql stage",
			account: domain.Account{
				ID: 7, Name: "A", Stage: domain.StageMQL,
				Attribution: &domain.Attribution{OriginalSource: "ppc"},
			},
			want: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAccount(tt.account, asOf)
			assert.Equal(t, tt.want, got.Score)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}

func TestRiskLabels(t *testing.T) {
	day := func(n int) *time.Time {
		ts := asOf.AddDate(0, 0, -n)
		return &ts
	}
	tests := []struct {
		name    string
		created *time.Time
		want    string
	}{
		{"no creation date", nil, domain.RiskUnknown},
		{"brand new", day(0), domain.RiskLow},
		{"thirty days exactly", day(30), domain.RiskLow},
		{"thirty one days", day(31), domain.RiskMedium},
		{"sixty days exactly", day(60), domain.RiskMedium},
		{"sixty one days", day(61), domain.RiskHigh},
		{"ancient", day(400), domain.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAccount(domain.Account{ID: 1, Name: "A", CreatedAt: tt.created}, asOf)
			assert.Equal(t, tt.want, got.Risk)
		})
	}
}

func TestTemperatureBoundaries(t *testing.T) {
	assert.Equal(t, domain.TemperatureHot, temperature(80))
	assert.Equal(t, domain.TemperatureWarm, temperature(79))
	assert.Equal(t, domain.TemperatureWarm, temperature(60))
	assert.Equal(t, domain.TemperatureCool, temperature(59))
	assert.Equal(t, domain.TemperatureCool, temperature(40))
	assert.Equal(t, domain.TemperatureCold, temperature(39))
	assert.Equal(t, domain.TemperatureCold, temperature(0))
}

func TestLeadScores_OrderAndTemperatureCounts(t *testing.T) {
	c := NewCalculator(nil)
	accounts := []domain.Account{
		{ID: 1, Name: "Cold", Stage: domain.StageSubscriber},                                                      // 50 -> Cool
		{ID: 2, Name: "Customer", Stage: domain.StageCustomer},                                                    // 80 -> Hot
		{ID: 3, Name: "SQLRef", Stage: domain.StageSQL, Attribution: &domain.Attribution{OriginalSource: "referral"}}, // 95 -> Hot
		{ID: 4, Name: "MQL", Stage: domain.StageMQL},                                                              // 65 -> Warm
	}

	snap := c.Snapshot(context.Background(), accounts, asOf)

	assert.Equal(t, []int64{3, 2, 4, 1}, []int64{
		snap.LeadScores[0].AccountID,
		snap.LeadScores[1].AccountID,
		snap.LeadScores[2].AccountID,
		snap.LeadScores[3].AccountID,
	})
	assert.Equal(t, 2, snap.HotLeads)
	assert.Equal(t, 1, snap.WarmLeads)
	assert.Equal(t, 1, snap.CoolLeads)
	assert.Zero(t, snap.ColdLeads)
}

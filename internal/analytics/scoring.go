package analytics

import (
	"sort"
	"strings"
	"time"

	"leadpulse/pkg/contracts/domain"
)

// Scoring bonuses. The source and stage bonuses are each mutually
// exclusive: the highest applicable one wins.
const (
	scoreBase = 50

	bonusSourceReferral = 20
	bonusSourceOrganic  = 15
	bonusSourcePaid     = 10

	bonusVisitsHigh      = 15
	bonusVisitsMedium    = 10
	visitsHighThreshold  = 5
	visitsMediumThreshold = 2

	bonusStageCustomer = 30
	bonusStageSQL      = 25
	bonusStageMQL      = 15
)

// Risk window edges, in days since account creation.
const (
	riskHighAfterDays   = 60
	riskMediumAfterDays = 30
)

// scoringSourceOrder checks the bonus categories in their own priority:
// referral outranks the search categories here, independent of the rule
// order NormalizeSource uses for rollup bucketing. A raw source like
// "organic referral" earns the referral bonus.
var scoringSourceOrder = []struct {
	category string
	bonus    int
}{
	{SourceReferral, bonusSourceReferral},
	{SourceOrganicSearch, bonusSourceOrganic},
	{SourcePaidSearch, bonusSourcePaid},
}

// sourceBonus matches the raw source text against the scored categories'
// keyword lists in scoring priority order.
func sourceBonus(raw string) int {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return 0
	}
	for _, entry := range scoringSourceOrder {
		for _, rule := range sourceRules {
			if rule.Category != entry.category {
				continue
			}
			for _, kw := range rule.Keywords {
				if strings.Contains(lower, kw) {
					return entry.bonus
				}
			}
		}
	}
	return 0
}

// ScoreAccount computes the health score of one account against the
// reference instant. The result is always in [0,100]; an account with no
// attribution data and no qualifying stage sits exactly at the base score.
func ScoreAccount(a domain.Account, asOf time.Time) domain.LeadScore {
	score := scoreBase

	score += sourceBonus(a.Source())

	if a.Attribution != nil {
		switch {
		case a.Attribution.Visits > visitsHighThreshold:
			score += bonusVisitsHigh
		case a.Attribution.Visits > visitsMediumThreshold:
			score += bonusVisitsMedium
		}
	}

	switch a.Stage {
	case domain.StageCustomer:
		score += bonusStageCustomer
	case domain.StageSQL:
		score += bonusStageSQL
	case domain.StageMQL:
		score += bonusStageMQL
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return domain.LeadScore{
		AccountID:   a.ID,
		Name:        a.Name,
		Score:       score,
		Temperature: temperature(score),
		Risk:        risk(a.CreatedAt, asOf),
	}
}

func temperature(score int) string {
	switch {
	case score >= 80:
		return domain.TemperatureHot
	case score >= 60:
		return domain.TemperatureWarm
	case score >= 40:
		return domain.TemperatureCool
	default:
		return domain.TemperatureCold
	}
}

// risk labels an account by age alone; it is independent of the score.
func risk(createdAt *time.Time, asOf time.Time) string {
	if createdAt == nil {
		return domain.RiskUnknown
	}
	days := int(asOf.Sub(*createdAt).Hours() / 24)
	switch {
	case days > riskHighAfterDays:
		return domain.RiskHigh
	case days > riskMediumAfterDays:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// leadScores scores every account and orders the list descending by score,
// ties keeping input order.
func (c *Calculator) leadScores(accounts []domain.Account, asOf time.Time) []domain.LeadScore {
	scores := make([]domain.LeadScore, 0, len(accounts))
	for _, a := range accounts {
		scores = append(scores, ScoreAccount(a, asOf))
	}
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Score > scores[b].Score
	})
	return scores
}

func temperatureCounts(scores []domain.LeadScore) (hot, warm, cool, cold int) {
	for _, s := range scores {
		switch s.Temperature {
		case domain.TemperatureHot:
			hot++
		case domain.TemperatureWarm:
			warm++
		case domain.TemperatureCool:
			cool++
		default:
			cold++
		}
	}
	return hot, warm, cool, cold
}

package analytics

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/venturelens/venturelens/internal/domain"
)

// Expected-return multiples are clamped to guard the weighted average
// against unrealistic projections skewing the aggregate.
const (
	minReturnMultiple = 0.5
	maxReturnMultiple = 10.0
)

// maxRiskSummaries caps the risk roll-up for dashboard display
const maxRiskSummaries = 3

// CalculateAggregateMetrics computes the arithmetic mean of each scoring
// dimension across analyzed records that carry analysis metrics.
// Returns all zeros when no such records exist.
func CalculateAggregateMetrics(records []domain.StartupRecord) AggregateMetrics {
	dims := make(map[string][]float64, 6)

	for _, rec := range records {
		if !rec.Analyzed() {
			continue
		}
		m := rec.AnalysisMetrics()
		if m == nil {
			continue
		}
		dims["marketSize"] = append(dims["marketSize"], m.MarketSize)
		dims["traction"] = append(dims["traction"], m.Traction)
		dims["team"] = append(dims["team"], m.Team)
		dims["product"] = append(dims["product"], m.Product)
		dims["financials"] = append(dims["financials"], m.Financials)
		dims["competition"] = append(dims["competition"], m.Competition)
	}

	if len(dims["marketSize"]) == 0 {
		return AggregateMetrics{}
	}

	return AggregateMetrics{
		MarketSize:  stat.Mean(dims["marketSize"], nil),
		Traction:    stat.Mean(dims["traction"], nil),
		Team:        stat.Mean(dims["team"], nil),
		Product:     stat.Mean(dims["product"], nil),
		Financials:  stat.Mean(dims["financials"], nil),
		Competition: stat.Mean(dims["competition"], nil),
	}
}

// CalculateAggregateRiskFlags rolls per-record risk flags up into at most
// three category-level summaries.
//
// Categories keep first-seen insertion order (not sorted by count or
// severity). Each category tracks an occurrence count and a running
// maximum severity: high always wins, medium displaces low, and a
// severity is never demoted. The synthesized entries intentionally
// discard each flag's free-text description in favor of a portfolio-level
// summary string.
func CalculateAggregateRiskFlags(records []domain.StartupRecord) []RiskFlagSummary {
	type rollup struct {
		severity domain.Severity
		count    int
	}

	byCategory := make(map[string]*rollup)
	var order []string

	for _, rec := range records {
		if !rec.Analyzed() || rec.AnalysisData == nil || rec.AnalysisData.RiskFlags == nil {
			continue
		}

		for _, flag := range rec.AnalysisData.RiskFlags {
			entry, seen := byCategory[flag.Category]
			if !seen {
				entry = &rollup{severity: flag.Type}
				byCategory[flag.Category] = entry
				order = append(order, flag.Category)
			}

			entry.count++
			if flag.Type.Rank() > entry.severity.Rank() {
				entry.severity = flag.Type
			}
		}
	}

	if len(order) > maxRiskSummaries {
		order = order[:maxRiskSummaries]
	}

	summaries := make([]RiskFlagSummary, 0, len(order))
	for _, category := range order {
		entry := byCategory[category]
		summaries = append(summaries, RiskFlagSummary{
			Type:        entry.severity,
			Category:    category,
			Description: fmt.Sprintf("Found in %d startup(s)", entry.count),
			Impact:      fmt.Sprintf("Portfolio-wide %s risk", strings.ToLower(category)),
		})
	}

	return summaries
}

// CalculatePortfolioInvestment sums target investments and computes the
// return-weighted growth percentage across analyzed records with a
// non-zero target investment.
//
// A zero target is treated as absent by the selection predicate, so such
// records contribute to neither the count nor the sum. Expected returns
// default to 1x when absent and are clamped to [0.5, 10] before
// weighting. Returns {0, 0} when no record qualifies.
func CalculatePortfolioInvestment(records []domain.StartupRecord) PortfolioInvestment {
	var totalInvestment, totalWeightedReturn float64

	for _, rec := range records {
		if !rec.Analyzed() || rec.AnalysisData == nil || rec.AnalysisData.Recommendation == nil {
			continue
		}

		target := rec.AnalysisData.Recommendation.TargetInvestment
		if target == 0 {
			continue
		}

		expectedReturn := rec.AnalysisData.Recommendation.ExpectedReturn
		if expectedReturn == 0 {
			expectedReturn = 1
		}
		expectedReturn = math.Min(math.Max(expectedReturn, minReturnMultiple), maxReturnMultiple)

		totalInvestment += target
		totalWeightedReturn += target * expectedReturn
	}

	if totalInvestment == 0 {
		return PortfolioInvestment{}
	}

	avgReturn := totalWeightedReturn / totalInvestment

	return PortfolioInvestment{
		TotalInvestment:  totalInvestment,
		GrowthPercentage: round10((avgReturn - 1) * 100),
	}
}

// round10 rounds to one decimal place
func round10(v float64) float64 {
	return math.Round(v*10) / 10
}

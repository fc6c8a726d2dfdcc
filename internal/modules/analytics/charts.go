package analytics

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/venturelens/venturelens/internal/domain"
)

// Fixed bucket colors, matched to the dashboard's chart palette.
var (
	scoreBucketColors = []string{"#ef4444", "#f97316", "#eab308", "#84cc16", "#22c55e"}

	recommendationColors = map[string]string{
		"Strong Buy": "#22c55e",
		"Buy":        "#84cc16",
		"Hold":       "#eab308",
		"Pass":       "#ef4444",
	}

	riskColors = map[domain.RiskLevel]string{
		domain.RiskLevelLow:    "#22c55e",
		domain.RiskLevelMedium: "#eab308",
		domain.RiskLevelHigh:   "#ef4444",
	}
)

// scoreBucketLabels are the five inclusive, contiguous score ranges.
// A boundary score belongs to the bucket whose max it is (20 -> "0-20",
// 21 -> "21-40"), so no record can be double-counted.
var scoreBucketLabels = []string{"0-20", "21-40", "41-60", "61-80", "81-100"}

// ScoreDistribution buckets analyzed records into the five score ranges.
// Returns an empty slice when no analyzed records exist; otherwise all
// five buckets are present, zero counts included.
func ScoreDistribution(records []domain.StartupRecord) []ScoreBucket {
	counts := make([]int, len(scoreBucketLabels))
	var analyzed int

	for _, rec := range records {
		if !rec.Analyzed() {
			continue
		}
		analyzed++
		counts[scoreBucketIndex(rec.Score())]++
	}

	if analyzed == 0 {
		return []ScoreBucket{}
	}

	buckets := make([]ScoreBucket, len(scoreBucketLabels))
	for i, label := range scoreBucketLabels {
		buckets[i] = ScoreBucket{
			Range: label,
			Count: counts[i],
			Color: scoreBucketColors[i],
		}
	}

	return buckets
}

func scoreBucketIndex(score float64) int {
	switch {
	case score <= 20:
		return 0
	case score <= 40:
		return 1
	case score <= 60:
		return 2
	case score <= 80:
		return 3
	default:
		return 4
	}
}

// RecommendationBreakdown counts analyzed records per canonical
// recommendation bucket. Matching is case-insensitive: anything
// containing "strong" (or exactly "strong_buy") is a Strong Buy; "buy",
// "hold" and "pass" must match exactly; anything else contributes to no
// bucket. Zero-count buckets are omitted.
func RecommendationBreakdown(records []domain.StartupRecord) []RecommendationSlice {
	counts := map[string]int{}

	for _, rec := range records {
		if !rec.Analyzed() {
			continue
		}
		if bucket, ok := recommendationBucket(rec.Recommendation); ok {
			counts[bucket]++
		}
	}

	slices := make([]RecommendationSlice, 0, len(recommendationColors))
	for _, name := range []string{"Strong Buy", "Buy", "Hold", "Pass"} {
		if counts[name] == 0 {
			continue
		}
		slices = append(slices, RecommendationSlice{
			Name:  name,
			Value: counts[name],
			Color: recommendationColors[name],
		})
	}

	return slices
}

func recommendationBucket(recommendation string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(recommendation))
	switch {
	case strings.Contains(normalized, "strong") || normalized == "strong_buy":
		return "Strong Buy", true
	case normalized == "buy":
		return "Buy", true
	case normalized == "hold":
		return "Hold", true
	case normalized == "pass":
		return "Pass", true
	default:
		return "", false
	}
}

// RiskDistribution counts analyzed records per risk level, matched
// case-insensitively. Zero-count buckets are omitted.
func RiskDistribution(records []domain.StartupRecord) []RiskSlice {
	counts := map[domain.RiskLevel]int{}

	for _, rec := range records {
		if !rec.Analyzed() {
			continue
		}
		switch strings.ToLower(string(rec.RiskLevel)) {
		case "low":
			counts[domain.RiskLevelLow]++
		case "medium":
			counts[domain.RiskLevelMedium]++
		case "high":
			counts[domain.RiskLevelHigh]++
		}
	}

	slices := make([]RiskSlice, 0, len(counts))
	for _, level := range []domain.RiskLevel{domain.RiskLevelLow, domain.RiskLevelMedium, domain.RiskLevelHigh} {
		if counts[level] == 0 {
			continue
		}
		slices = append(slices, RiskSlice{
			Name:  string(level),
			Value: counts[level],
			Color: riskColors[level],
		})
	}

	return slices
}

// ActivityTimeline groups ALL given records (analyzed or not) by calendar
// day of creation, sorted ascending by date.
func ActivityTimeline(records []domain.StartupRecord) []ActivityPoint {
	counts := map[string]int{}

	for _, rec := range records {
		day := rec.CreatedAt.Format("2006-01-02")
		counts[day]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]ActivityPoint, 0, len(days))
	for _, day := range days {
		points = append(points, ActivityPoint{Date: day, Count: counts[day]})
	}

	return points
}

// radarAxes fixes the radar's six points and their display labels
var radarAxes = []string{"Market", "Traction", "Team", "Product", "Financial", "Competition"}

// AverageMetricsRadar computes the six-point radar of rounded average
// metrics over analyzed records carrying metrics in either shape
// (flattened or nested), plus the overall average score - the rounded
// mean of the six rounded axis averages. Empty subset yields an empty
// data list and a zero average.
func AverageMetricsRadar(records []domain.StartupRecord) RadarChart {
	dims := make([][]float64, len(radarAxes))

	for _, rec := range records {
		if !rec.Analyzed() {
			continue
		}
		m := rec.AnyMetrics()
		if m == nil {
			continue
		}
		for i, v := range []float64{m.MarketSize, m.Traction, m.Team, m.Product, m.Financials, m.Competition} {
			dims[i] = append(dims[i], v)
		}
	}

	if len(dims[0]) == 0 {
		return RadarChart{Data: []RadarPoint{}}
	}

	data := make([]RadarPoint, len(radarAxes))
	var axisTotal float64
	for i, axis := range radarAxes {
		avg := math.Round(stat.Mean(dims[i], nil))
		axisTotal += avg
		data[i] = RadarPoint{Metric: axis, Value: avg, FullMark: 100}
	}

	return RadarChart{
		Data:     data,
		AvgScore: math.Round(axisTotal / float64(len(radarAxes))),
	}
}

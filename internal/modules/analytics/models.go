// Package analytics computes portfolio-wide aggregates and chart-ready
// datasets over startup analysis records.
//
// Every computation here is a pure, synchronous function over an immutable
// record slice: missing optional fields mean "excluded from this
// aggregate", never an error, and every aggregator degrades to its
// documented empty/zero shape on empty input.
package analytics

import "github.com/venturelens/venturelens/internal/domain"

// TimePeriod selects the dashboard's record window
type TimePeriod string

const (
	PeriodToday TimePeriod = "today"
	PeriodWeek  TimePeriod = "week"
	PeriodMonth TimePeriod = "month"
	PeriodAll   TimePeriod = "all"
)

// Valid reports whether p is a known period selector
func (p TimePeriod) Valid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return true
	}
	return false
}

// AggregateMetrics holds the arithmetic mean of each scoring dimension
// across analyzed records that carry analysis metrics. All zero when no
// such records exist.
type AggregateMetrics struct {
	MarketSize  float64 `json:"marketSize"`
	Traction    float64 `json:"traction"`
	Team        float64 `json:"team"`
	Product     float64 `json:"product"`
	Financials  float64 `json:"financials"`
	Competition float64 `json:"competition"`
}

// RiskFlagSummary is a portfolio-level roll-up of one risk category
type RiskFlagSummary struct {
	Type        domain.Severity `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Impact      string          `json:"impact"`
}

// PortfolioInvestment is the weighted investment/return projection
type PortfolioInvestment struct {
	TotalInvestment  float64 `json:"totalInvestment"`
	GrowthPercentage float64 `json:"growthPercentage"`
}

// ScoreBucket is one bar of the score distribution chart
type ScoreBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// RecommendationSlice is one segment of the recommendation breakdown chart
type RecommendationSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// RiskSlice is one segment of the risk distribution chart
type RiskSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// ActivityPoint is one day of the activity timeline chart
type ActivityPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// RadarPoint is one axis of the average-metrics radar chart
type RadarPoint struct {
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
	FullMark float64 `json:"fullMark"`
}

// RadarChart is the average-metrics radar with its overall score
type RadarChart struct {
	Data     []RadarPoint `json:"data"`
	AvgScore float64      `json:"avgScore"`
}

// DashboardSnapshot bundles every aggregate the dashboard view renders
// for one time period.
type DashboardSnapshot struct {
	Period              TimePeriod            `json:"period"`
	TotalRecords        int                   `json:"totalRecords"`
	AnalyzedRecords     int                   `json:"analyzedRecords"`
	Metrics             AggregateMetrics      `json:"metrics"`
	RiskFlags           []RiskFlagSummary     `json:"riskFlags"`
	Investment          PortfolioInvestment   `json:"investment"`
	ScoreDistribution   []ScoreBucket         `json:"scoreDistribution"`
	Recommendations     []RecommendationSlice `json:"recommendations"`
	RiskDistribution    []RiskSlice           `json:"riskDistribution"`
	ActivityTimeline    []ActivityPoint       `json:"activityTimeline"`
	AverageMetricsRadar RadarChart            `json:"averageMetricsRadar"`
}

// Package domain provides core domain models and types.
package domain

import "time"

// RiskLevel represents the headline risk classification of a startup
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Severity represents the severity of an individual risk flag
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank returns the ordering value of a severity (low < medium < high).
// Unknown severities rank below low so they can never displace a known one.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	default:
		return 0
	}
}

// Metrics holds the six 0-100 scoring dimensions of a startup analysis.
//
// Dimensions are plain float64 fields: a key absent from the upstream JSON
// decodes to 0 and participates in averages as 0, so no NaN can enter the
// aggregates (defaulting is resolved here, at the decode boundary, rather
// than inside each aggregator).
type Metrics struct {
	MarketSize  float64 `json:"marketSize"`
	Traction    float64 `json:"traction"`
	Team        float64 `json:"team"`
	Product     float64 `json:"product"`
	Financials  float64 `json:"financials"`
	Competition float64 `json:"competition"`
}

// RiskFlag is a single analyst-identified risk on a startup
type RiskFlag struct {
	Type        Severity `json:"type"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// InvestmentRecommendation carries the analysis engine's sizing output.
// TargetInvestment is in currency units; ExpectedReturn is a multiple
// (3.0 means 3x).
type InvestmentRecommendation struct {
	TargetInvestment float64 `json:"targetInvestment"`
	ExpectedReturn   float64 `json:"expectedReturn"`
}

// AnalysisData is the nested analysis payload attached to a startup once
// the analysis engine has processed it. Every sub-object is optional.
type AnalysisData struct {
	Metrics        *Metrics                  `json:"metrics,omitempty"`
	RiskFlags      []RiskFlag                `json:"riskFlags,omitempty"`
	Recommendation *InvestmentRecommendation `json:"recommendation,omitempty"`
}

// StartupRecord is a snapshot of a startup as served by the analysis
// backend. This service never mutates records; it only reads them.
//
// Metrics may appear either flattened at the top level or nested under
// AnalysisData - both shapes occur in upstream responses and both must be
// accepted by consumers that read metrics.
type StartupRecord struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Industry       string        `json:"industry"`
	RiskLevel      RiskLevel     `json:"riskLevel,omitempty"`
	Recommendation string        `json:"recommendation,omitempty"`
	OverallScore   *float64      `json:"overallScore,omitempty"`
	Metrics        *Metrics      `json:"metrics,omitempty"`
	AnalysisData   *AnalysisData `json:"analysisData,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Analyzed reports whether the record has been processed by the analysis
// engine. A record is analyzed iff its overall score is present.
func (r *StartupRecord) Analyzed() bool {
	return r.OverallScore != nil
}

// Score returns the overall score, or 0 for an unanalyzed record.
func (r *StartupRecord) Score() float64 {
	if r.OverallScore == nil {
		return 0
	}
	return *r.OverallScore
}

// AnalysisMetrics returns the nested analysis metrics, or nil when the
// record carries none.
func (r *StartupRecord) AnalysisMetrics() *Metrics {
	if r.AnalysisData == nil {
		return nil
	}
	return r.AnalysisData.Metrics
}

// AnyMetrics returns metrics from either shape: the flattened top-level
// field wins, then the nested analysis payload.
func (r *StartupRecord) AnyMetrics() *Metrics {
	if r.Metrics != nil {
		return r.Metrics
	}
	return r.AnalysisMetrics()
}

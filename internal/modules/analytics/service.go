package analytics

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/venturelens/venturelens/internal/domain"
)

// Service produces complete dashboard snapshots with memoized
// recomputation: a derivation set is recomputed only when the structural
// signature of its filtered input changes, not on every request.
//
// Inputs are treated as immutable snapshots per request; the cache itself
// is the only shared state and is guarded by a mutex.
type Service struct {
	log zerolog.Logger

	mu    sync.Mutex
	cache map[TimePeriod]cachedEntry
}

type cachedEntry struct {
	signature uint64
	snapshot  *DashboardSnapshot
}

// NewService creates a new analytics service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log:   log.With().Str("service", "analytics").Logger(),
		cache: make(map[TimePeriod]cachedEntry),
	}
}

// Dashboard computes (or returns the memoized) dashboard snapshot for the
// given records and time period. Unknown periods fall back to "all".
func (s *Service) Dashboard(records []domain.StartupRecord, period TimePeriod) *DashboardSnapshot {
	if !period.Valid() {
		period = PeriodAll
	}

	filtered := FilterByTimePeriod(records, period)
	sig := signature(filtered)

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.cache[period]; ok && entry.signature == sig {
		s.log.Debug().Str("period", string(period)).Msg("Dashboard cache hit")
		return entry.snapshot
	}

	snapshot := buildSnapshot(filtered, period)
	s.cache[period] = cachedEntry{signature: sig, snapshot: snapshot}

	s.log.Debug().
		Str("period", string(period)).
		Int("records", len(filtered)).
		Int("analyzed", snapshot.AnalyzedRecords).
		Msg("Dashboard recomputed")

	return snapshot
}

// buildSnapshot runs every derivation over the already-filtered records
func buildSnapshot(filtered []domain.StartupRecord, period TimePeriod) *DashboardSnapshot {
	analyzed := analyzedOnly(filtered)

	return &DashboardSnapshot{
		Period:              period,
		TotalRecords:        len(filtered),
		AnalyzedRecords:     len(analyzed),
		Metrics:             CalculateAggregateMetrics(filtered),
		RiskFlags:           CalculateAggregateRiskFlags(filtered),
		Investment:          CalculatePortfolioInvestment(filtered),
		ScoreDistribution:   ScoreDistribution(filtered),
		Recommendations:     RecommendationBreakdown(filtered),
		RiskDistribution:    RiskDistribution(filtered),
		ActivityTimeline:    ActivityTimeline(filtered),
		AverageMetricsRadar: AverageMetricsRadar(filtered),
	}
}

// signature computes a cheap structural fingerprint of a record set:
// identity, score, risk level, recommendation, sizing and creation time
// of every record, in order. It deliberately skips the per-record metric
// and risk-flag payloads - those only change when a record is re-analyzed,
// which also changes its score.
func signature(records []domain.StartupRecord) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(len(records)))
	h.Write(buf[:])

	for _, rec := range records {
		h.Write([]byte(rec.ID))
		h.Write([]byte(rec.RiskLevel))
		h.Write([]byte(rec.Recommendation))

		score := math.NaN()
		if rec.OverallScore != nil {
			score = *rec.OverallScore
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(score))
		h.Write(buf[:])

		target := 0.0
		if rec.AnalysisData != nil && rec.AnalysisData.Recommendation != nil {
			target = rec.AnalysisData.Recommendation.TargetInvestment
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(target))
		h.Write(buf[:])

		binary.LittleEndian.PutUint64(buf[:], uint64(rec.CreatedAt.UnixNano()))
		h.Write(buf[:])
	}

	return h.Sum64()
}

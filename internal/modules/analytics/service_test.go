package analytics

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturelens/venturelens/internal/domain"
)

func TestDashboardEmptyInput(t *testing.T) {
	svc := NewService(zerolog.Nop())

	snap := svc.Dashboard(nil, PeriodAll)
	require.NotNil(t, snap)

	assert.Equal(t, 0, snap.TotalRecords)
	assert.Equal(t, AggregateMetrics{}, snap.Metrics)
	assert.Empty(t, snap.RiskFlags)
	assert.Equal(t, PortfolioInvestment{}, snap.Investment)
	assert.Empty(t, snap.ScoreDistribution)
	assert.Empty(t, snap.Recommendations)
	assert.Empty(t, snap.RiskDistribution)
	assert.Empty(t, snap.ActivityTimeline)
	assert.Empty(t, snap.AverageMetricsRadar.Data)
	assert.Equal(t, 0.0, snap.AverageMetricsRadar.AvgScore)
}

func TestDashboardMemoization(t *testing.T) {
	svc := NewService(zerolog.Nop())

	records := []domain.StartupRecord{
		analyzedWithMetrics("a", 70, domain.Metrics{MarketSize: 80}),
	}
	records[0].CreatedAt = time.Now()

	first := svc.Dashboard(records, PeriodAll)
	second := svc.Dashboard(records, PeriodAll)
	// Identical input must return the cached snapshot, not a recompute
	assert.Same(t, first, second)

	// A changed record set must invalidate the cache
	score := 30.0
	changed := append(records, domain.StartupRecord{
		ID: "b", OverallScore: &score, CreatedAt: time.Now(),
	})
	third := svc.Dashboard(changed, PeriodAll)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, third.AnalyzedRecords)
}

func TestDashboardPerPeriodCaches(t *testing.T) {
	svc := NewService(zerolog.Nop())

	old := analyzedRecord("old", 50)
	old.CreatedAt = time.Now().AddDate(0, 0, -60)
	recent := analyzedRecord("recent", 80)
	recent.CreatedAt = time.Now().Add(-time.Hour)
	records := []domain.StartupRecord{old, recent}

	all := svc.Dashboard(records, PeriodAll)
	week := svc.Dashboard(records, PeriodWeek)

	assert.Equal(t, 2, all.TotalRecords)
	assert.Equal(t, 1, week.TotalRecords)

	// Each period keeps its own cache entry
	assert.Same(t, all, svc.Dashboard(records, PeriodAll))
	assert.Same(t, week, svc.Dashboard(records, PeriodWeek))
}

func TestDashboardUnknownPeriodFallsBackToAll(t *testing.T) {
	svc := NewService(zerolog.Nop())

	records := []domain.StartupRecord{analyzedRecord("a", 70)}
	snap := svc.Dashboard(records, TimePeriod("bogus"))
	assert.Equal(t, PeriodAll, snap.Period)
	assert.Equal(t, 1, snap.TotalRecords)
}

func TestDashboardCounts(t *testing.T) {
	svc := NewService(zerolog.Nop())

	records := []domain.StartupRecord{
		analyzedRecord("a", 70),
		{ID: "pending", CreatedAt: time.Now()},
	}

	snap := svc.Dashboard(records, PeriodAll)
	assert.Equal(t, 2, snap.TotalRecords)
	assert.Equal(t, 1, snap.AnalyzedRecords)
}

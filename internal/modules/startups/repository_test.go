package startups

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/venturelens/venturelens/internal/domain"
)

const testSchema = `
CREATE TABLE startups (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    industry       TEXT NOT NULL DEFAULT '',
    risk_level     TEXT,
    recommendation TEXT,
    overall_score  REAL,
    analysis_data  TEXT,
    metrics        TEXT,
    created_at     INTEGER NOT NULL
);
`

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecords() []domain.StartupRecord {
	score := 74.0
	return []domain.StartupRecord{
		{
			ID:             "s1",
			Name:           "Acme Robotics",
			Industry:       "Robotics",
			RiskLevel:      domain.RiskLevelMedium,
			Recommendation: "Buy",
			OverallScore:   &score,
			AnalysisData: &domain.AnalysisData{
				Metrics: &domain.Metrics{MarketSize: 80, Traction: 70, Team: 90, Product: 75, Financials: 60, Competition: 50},
				RiskFlags: []domain.RiskFlag{
					{Type: domain.SeverityHigh, Category: "Market", Description: "Crowded segment"},
				},
				Recommendation: &domain.InvestmentRecommendation{TargetInvestment: 500000, ExpectedReturn: 3},
			},
			CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        "s2",
			Name:      "Beta Health",
			Industry:  "Healthtech",
			CreatedAt: time.Date(2026, 8, 25, 16, 30, 0, 0, time.UTC),
		},
	}
}

func TestReplaceAllAndList(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.ReplaceAll(sampleRecords()))

	records, err := repo.List()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first
	assert.Equal(t, "s2", records[0].ID)
	assert.Equal(t, "s1", records[1].ID)

	acme := records[1]
	assert.True(t, acme.Analyzed())
	assert.Equal(t, 74.0, acme.Score())
	require.NotNil(t, acme.AnalysisData)
	assert.Equal(t, 90.0, acme.AnalysisData.Metrics.Team)
	require.Len(t, acme.AnalysisData.RiskFlags, 1)
	assert.Equal(t, domain.SeverityHigh, acme.AnalysisData.RiskFlags[0].Type)
	require.NotNil(t, acme.AnalysisData.Recommendation)
	assert.Equal(t, 500000.0, acme.AnalysisData.Recommendation.TargetInvestment)

	beta := records[0]
	assert.False(t, beta.Analyzed())
	assert.Nil(t, beta.AnalysisData)
	assert.Empty(t, beta.Recommendation)
}

func TestReplaceAllDropsRemovedRecords(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.ReplaceAll(sampleRecords()))
	require.NoError(t, repo.ReplaceAll(sampleRecords()[:1]))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	gone, err := repo.Get("s2")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	require.NoError(t, repo.ReplaceAll(sampleRecords()))

	rec, err := repo.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Acme Robotics", rec.Name)

	missing, err := repo.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListEmpty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	records, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

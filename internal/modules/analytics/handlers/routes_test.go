package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venturelens/venturelens/internal/domain"
	"github.com/venturelens/venturelens/internal/modules/analytics"
)

// stubSource serves a fixed record set
type stubSource struct {
	records []domain.StartupRecord
	err     error
}

func (s *stubSource) Records(ctx context.Context) ([]domain.StartupRecord, error) {
	return s.records, s.err
}

func testRouter(source *stubSource) *chi.Mux {
	handler := NewHandler(source, analytics.NewService(zerolog.Nop()), zerolog.Nop())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestRegisterRoutes(t *testing.T) {
	router := testRouter(&stubSource{})

	paths := []string{
		"/analytics/dashboard",
		"/analytics/metrics",
		"/analytics/risk-flags",
		"/analytics/investment",
		"/analytics/charts/score-distribution",
		"/analytics/charts/recommendations",
		"/analytics/charts/risk-distribution",
		"/analytics/charts/activity",
		"/analytics/charts/radar",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestDashboardEndpoint(t *testing.T) {
	score := 75.0
	source := &stubSource{records: []domain.StartupRecord{
		{ID: "s1", Name: "Acme", OverallScore: &score},
		{ID: "s2", Name: "Beta"},
	}}
	router := testRouter(source)

	req := httptest.NewRequest(http.MethodGet, "/analytics/dashboard?period=all", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap analytics.DashboardSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.TotalRecords)
	assert.Equal(t, 1, snap.AnalyzedRecords)
	assert.Equal(t, analytics.PeriodAll, snap.Period)
}

func TestSourceErrorMapsToBadGateway(t *testing.T) {
	router := testRouter(&stubSource{err: errors.New("upstream down")})

	req := httptest.NewRequest(http.MethodGet, "/analytics/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestInvalidPeriodDefaultsToAll(t *testing.T) {
	score := 60.0
	source := &stubSource{records: []domain.StartupRecord{
		{ID: "s1", OverallScore: &score},
	}}
	router := testRouter(source)

	req := httptest.NewRequest(http.MethodGet, "/analytics/dashboard?period=fortnight", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap analytics.DashboardSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, analytics.PeriodAll, snap.Period)
}

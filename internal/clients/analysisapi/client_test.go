package analysisapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStartups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/startups", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "s1", "name": "Acme", "overallScore": 75,
			 "analysisData": {"metrics": {"marketSize": 80}}},
			{"id": "s2", "name": "Beta"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())

	records, err := client.ListStartups(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "s1", records[0].ID)
	assert.True(t, records[0].Analyzed())
	assert.Equal(t, 80.0, records[0].AnalysisData.Metrics.MarketSize)
	assert.False(t, records[1].Analyzed())
}

func TestListStartupsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())

	_, err := client.ListStartups(context.Background())
	assert.Error(t, err)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	// Widen the limiter so the loop below doesn't block on it
	client.limiter.SetBurst(20)
	client.limiter.SetLimit(100)

	for i := 0; i < 5; i++ {
		_, err := client.ListStartups(context.Background())
		require.Error(t, err)
	}

	// Breaker should now short-circuit without reaching the server
	srv.Close()
	_, err := client.ListStartups(context.Background())
	assert.Error(t, err)
}

// Package analysisapi provides the HTTP client for the startup-analysis
// backend's listing API.
package analysisapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/venturelens/venturelens/internal/domain"
)

// Client fetches startup records from the analysis backend.
//
// Outbound calls are guarded by a rate limiter and a circuit breaker so a
// degraded upstream cannot be hammered by the refresh schedule; callers
// fall back to the cached snapshot when a fetch fails.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// NewClient creates a new analysis API client
func NewClient(baseURL string, log zerolog.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    "analysis-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(2), 4), // 2 req/s, burst 4
		breaker: gobreaker.NewCircuitBreaker(settings),
		log:     log.With().Str("client", "analysis-api").Logger(),
	}
}

// ListStartups fetches the full startup listing.
// Returns the decoded records, or an error when the upstream is
// unreachable, rejects the request, or the breaker is open.
func (c *Client) ListStartups(ctx context.Context) ([]domain.StartupRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchListing(ctx)
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.StartupRecord), nil
}

func (c *Client) fetchListing(ctx context.Context) ([]domain.StartupRecord, error) {
	url := c.baseURL + "/api/startups"
	c.log.Debug().Str("url", url).Msg("Fetching startup listing")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var records []domain.StartupRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	c.log.Debug().Int("count", len(records)).Msg("Fetched startup listing")
	return records, nil
}

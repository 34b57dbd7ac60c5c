// internal/interface/provider/history.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/pkg/logger"
)

// MaxQueryWindowSeconds is the widest time span the history provider accepts
// in a single call. Wider ranges must be chunked by the caller.
const MaxQueryWindowSeconds = 30 * 24 * 60 * 60

// HistoryClient fetches completed flight segments from the OpenSky network.
// The HTTP client is expected to carry OAuth credentials when configured.
type HistoryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewHistoryClient creates a new flight history client
func NewHistoryClient(baseURL string, httpClient *http.Client, logger logger.Logger) *HistoryClient {
	return &HistoryClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchSegments returns the flight segments for an aircraft between begin and
// end (epoch seconds). The provider answers 404 for windows with no flights,
// which is an empty result, not a failure.
func (c *HistoryClient) FetchSegments(ctx context.Context, icao24 string, begin, end int64) ([]entity.HistoryEntry, error) {
	if end < begin {
		return nil, fmt.Errorf("invalid window: end %d before begin %d", end, begin)
	}
	if end-begin > MaxQueryWindowSeconds {
		return nil, fmt.Errorf("window of %d seconds exceeds provider maximum of %d", end-begin, MaxQueryWindowSeconds)
	}

	url := fmt.Sprintf("%s/api/flights/aircraft?icao24=%s&begin=%d&end=%d", c.baseURL, icao24, begin, end)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create history request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %v: %w", err, entity.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("No flights in window", "icao24", icao24, "begin", begin, "end", end)
		return []entity.HistoryEntry{}, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history provider returned status %d: %w", resp.StatusCode, entity.ErrUpstreamUnavailable)
	}

	var segments []entity.HistoryEntry
	if err := json.NewDecoder(resp.Body).Decode(&segments); err != nil {
		return nil, fmt.Errorf("failed to decode history response: %v: %w", err, entity.ErrUpstreamUnavailable)
	}

	c.logger.Debug("Fetched history segments", "icao24", icao24, "count", len(segments))
	return segments, nil
}

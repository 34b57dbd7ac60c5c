// internal/interface/provider/liveflight.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/pkg/logger"
)

// LiveFlightClient fetches current positions from the Flightradar24 live API
type LiveFlightClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewLiveFlightClient creates a new live flight client
func NewLiveFlightClient(baseURL, apiKey string, timeout time.Duration, logger logger.Logger) *LiveFlightClient {
	return &LiveFlightClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CurrentPosition fetches the live position for a registration. A nil flight
// with a nil error means the aircraft is not currently airborne.
func (c *LiveFlightClient) CurrentPosition(ctx context.Context, registration string) (*entity.LiveFlight, error) {
	url := fmt.Sprintf("%s/api/live/flight-positions/full?registrations=%s", c.baseURL, registration)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create live position request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("live position request failed: %v: %w", err, entity.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("live position provider returned status %d: %w", resp.StatusCode, entity.ErrUpstreamUnavailable)
	}

	var response struct {
		Data []struct {
			FR24ID   string  `json:"fr24_id"`
			Flight   string  `json:"flight"`
			Callsign string  `json:"callsign"`
			Lat      float64 `json:"lat"`
			Lon      float64 `json:"lon"`
			Track    float64 `json:"track"`
			Alt      float64 `json:"alt"`
			GSpeed   float64 `json:"gspeed"`
			OrigIcao string  `json:"orig_icao"`
			OrigIata string  `json:"orig_iata"`
			DestIcao string  `json:"dest_icao"`
			DestIata string  `json:"dest_iata"`
			ETA      string  `json:"eta"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode live position response: %v: %w", err, entity.ErrUpstreamUnavailable)
	}

	if len(response.Data) == 0 {
		c.logger.Debug("No live flight for registration", "registration", registration)
		return nil, nil
	}

	pos := response.Data[0]
	flight := &entity.LiveFlight{
		FR24ID:      pos.FR24ID,
		Flight:      pos.Flight,
		Callsign:    pos.Callsign,
		Lat:         pos.Lat,
		Lon:         pos.Lon,
		Track:       pos.Track,
		Alt:         pos.Alt,
		GroundSpeed: pos.GSpeed,
		OrigIcao:    pos.OrigIcao,
		OrigIata:    pos.OrigIata,
		DestIcao:    pos.DestIcao,
		DestIata:    pos.DestIata,
	}

	if pos.ETA != "" {
		eta, err := time.Parse(time.RFC3339, pos.ETA)
		if err != nil {
			return nil, fmt.Errorf("failed to parse eta %q: %v: %w", pos.ETA, err, entity.ErrUpstreamUnavailable)
		}
		flight.ETA = &eta
	}

	return flight, nil
}

// internal/interface/provider/registry.go
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

// RegistryClient looks up static aircraft metadata from the adsbdb registry
type RegistryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewRegistryClient creates a new registry client
func NewRegistryClient(baseURL string, timeout time.Duration, logger logger.Logger) *RegistryClient {
	return &RegistryClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Lookup resolves a registration to aircraft metadata. Any transport or
// decode failure is reported as ErrUpstreamUnavailable; callers degrade to a
// nil aircraft.
func (c *RegistryClient) Lookup(ctx context.Context, registration string) (*entity.Aircraft, error) {
	url := fmt.Sprintf("%s/v0/aircraft/%s", c.baseURL, registration)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %v: %w", err, entity.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d: %w", resp.StatusCode, entity.ErrUpstreamUnavailable)
	}

	var response struct {
		Response struct {
			Aircraft struct {
				Type            string `json:"type"`
				IcaoType        string `json:"icao_type"`
				Manufacturer    string `json:"manufacturer"`
				ModeS           string `json:"mode_s"`
				Registration    string `json:"registration"`
				RegisteredOwner string `json:"registered_owner"`
				URLPhoto        string `json:"url_photo"`
			} `json:"aircraft"`
		} `json:"response"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %v: %w", err, entity.ErrUpstreamUnavailable)
	}

	ac := response.Response.Aircraft
	c.logger.Debug("Registry lookup completed", "registration", registration, "icao24", ac.ModeS)

	return &entity.Aircraft{
		Registration:    ac.Registration,
		Icao24:          strings.ToLower(ac.ModeS),
		Type:            ac.Type,
		IcaoType:        ac.IcaoType,
		Manufacturer:    ac.Manufacturer,
		RegisteredOwner: ac.RegisteredOwner,
		PhotoURL:        ac.URLPhoto,
	}, nil
}

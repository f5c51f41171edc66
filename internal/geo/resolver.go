// ABOUTME: Reverse-geocoding resolver that turns coordinates into an area name
// ABOUTME: Best-effort enrichment for the location filter; failures yield ""

package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Resolver calls a Nominatim-style reverse-geocoding service
type Resolver struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a resolver against the given geocoding base URL
func New(baseURL string) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// address holds the component fields of a reverse-geocode response, in
// descending order of preference for a human-readable area name.
type address struct {
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	Village       string `json:"village"`
	Town          string `json:"town"`
	City          string `json:"city"`
	County        string `json:"county"`
}

type reverseResponse struct {
	Address address `json:"address"`
}

// areaName picks the first present component
func (a address) areaName() string {
	for _, field := range []string{a.Suburb, a.Neighbourhood, a.Village, a.Town, a.City, a.County} {
		if field != "" {
			return field
		}
	}
	return ""
}

// ResolveArea reverse-geocodes the coordinates into an area name. Any
// failure returns an empty string and the caller falls back to manual
// entry; there is no retry. The raw error is only logged.
func (r *Resolver) ResolveArea(ctx context.Context, lat, lon float64) string {
	url := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%f&lon=%f", r.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Debug("reverse geocode request failed", "error", err)
		return ""
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		slog.Debug("reverse geocode call failed", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("reverse geocode returned non-200", "status", resp.StatusCode)
		return ""
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		slog.Debug("reverse geocode response invalid", "error", err)
		return ""
	}

	return decoded.Address.areaName()
}

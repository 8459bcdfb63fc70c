package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
)

// ErrLocationNotFound signals a place name the geocoder could not resolve.
// The delivery layer treats it as a client input error.
var ErrLocationNotFound = errors.New("location not found")

// GeocodeService resolves place names to coordinates via the Mapbox
// Geocoding API.
type GeocodeService struct {
	accessToken string
	httpClient  *http.Client
}

// NewGeocodeService creates a new geocode service
func NewGeocodeService(accessToken string) *GeocodeService {
	return &GeocodeService{
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// mapboxGeocodeResponse represents the Mapbox Geocoding API response
type mapboxGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode converts a place name into coordinates.
func (s *GeocodeService) Geocode(ctx context.Context, place string) (domain.RoutePoint, error) {
	if place == "" {
		return domain.RoutePoint{}, ErrLocationNotFound
	}

	// Return deterministic mock coordinates if no API token
	if s.accessToken == "" {
		return s.getMockCoordinates(place), nil
	}

	endpoint := fmt.Sprintf(
		"https://api.mapbox.com/geocoding/v5/mapbox.places/%s.json?access_token=%s",
		url.PathEscape(place), url.QueryEscape(s.accessToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.RoutePoint{}, fmt.Errorf("geocode: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Fallback to mock on network error
		return s.getMockCoordinates(place), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.getMockCoordinates(place), nil
	}

	var geoResp mapboxGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return domain.RoutePoint{}, fmt.Errorf("geocode: failed to decode response: %w", err)
	}

	if len(geoResp.Features) == 0 || len(geoResp.Features[0].Geometry.Coordinates) < 2 {
		return domain.RoutePoint{}, fmt.Errorf("geocode: %w: %q", ErrLocationNotFound, place)
	}

	coords := geoResp.Features[0].Geometry.Coordinates
	return domain.RoutePoint{Lon: coords[0], Lat: coords[1]}, nil
}

// getMockCoordinates derives stable pseudo-coordinates from the place name
// so demo mode behaves deterministically across requests.
func (s *GeocodeService) getMockCoordinates(place string) domain.RoutePoint {
	h := fnv.New32a()
	h.Write([]byte(place))
	sum := h.Sum32()

	// Spread mock locations over a ~0.2 degree box around downtown LA.
	latOffset := float64(sum%1000)/1000*0.2 - 0.1
	lonOffset := float64((sum/1000)%1000)/1000*0.2 - 0.1

	return domain.RoutePoint{
		Lon: -118.2437 + lonOffset,
		Lat: 34.0522 + latOffset,
	}
}

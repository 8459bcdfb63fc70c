package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
	"github.com/satvikkk/travel-aware/pkg/utils"
)

// DefaultMaxAlternatives caps how many candidate routes a request scores.
const DefaultMaxAlternatives = 5

// DirectionsService fetches alternative driving routes from the Mapbox
// Directions API.
type DirectionsService struct {
	accessToken     string
	maxAlternatives int
	httpClient      *http.Client
}

// NewDirectionsService creates a new directions service
func NewDirectionsService(accessToken string, maxAlternatives int) *DirectionsService {
	if maxAlternatives <= 0 {
		maxAlternatives = DefaultMaxAlternatives
	}
	return &DirectionsService{
		accessToken:     accessToken,
		maxAlternatives: maxAlternatives,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// mapboxDirectionsResponse represents the Mapbox Directions API response
type mapboxDirectionsResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat] pairs
		} `json:"geometry"`
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// GetRoutes fetches up to maxAlternatives driving routes between two
// coordinates. An empty result is the caller's error to surface.
func (s *DirectionsService) GetRoutes(ctx context.Context, start, end domain.RoutePoint) ([]domain.Route, error) {
	// Return synthetic routes if no API token
	if s.accessToken == "" {
		return s.getMockRoutes(start, end), nil
	}

	endpoint := fmt.Sprintf(
		"https://api.mapbox.com/directions/v5/mapbox/driving/%f,%f;%f,%f?geometries=geojson&overview=full&alternatives=true&access_token=%s",
		start.Lon, start.Lat, end.Lon, end.Lat, url.QueryEscape(s.accessToken),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("directions: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Fallback to synthetic routes on network error
		return s.getMockRoutes(start, end), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.getMockRoutes(start, end), nil
	}

	var dirResp mapboxDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dirResp); err != nil {
		return nil, fmt.Errorf("directions: failed to decode response: %w", err)
	}

	routes := make([]domain.Route, 0, len(dirResp.Routes))
	for _, r := range dirResp.Routes {
		if len(routes) == s.maxAlternatives {
			break
		}
		if len(r.Geometry.Coordinates) < 2 {
			continue
		}
		points := make([]domain.RoutePoint, len(r.Geometry.Coordinates))
		for i, c := range r.Geometry.Coordinates {
			points[i] = domain.RoutePoint{Lon: c[0], Lat: c[1]}
		}
		routes = append(routes, domain.Route{
			Points:          points,
			DistanceKm:      r.Distance / 1000,
			DurationSeconds: r.Duration,
		})
	}
	return routes, nil
}

// getMockRoutes generates synthetic alternatives between two points: a
// direct line plus two bowed variants, with dense interpolated vertices so
// proximity testing behaves like real route geometry.
func (s *DirectionsService) getMockRoutes(start, end domain.RoutePoint) []domain.Route {
	const vertices = 40

	variants := []struct {
		bow         float64 // perpendicular offset in degrees at the midpoint
		speedKmh    float64
		detourScale float64
	}{
		{0.0, 45, 1.0},
		{0.008, 55, 1.08},
		{-0.012, 62, 1.15},
	}

	count := len(variants)
	if count > s.maxAlternatives {
		count = s.maxAlternatives
	}

	routes := make([]domain.Route, 0, count)
	for _, v := range variants[:count] {
		points := make([]domain.RoutePoint, 0, vertices+1)
		var distanceKm float64
		for i := 0; i <= vertices; i++ {
			t := float64(i) / vertices
			// Bow peaks mid-route and vanishes at the endpoints.
			arc := v.bow * 4 * t * (1 - t)
			pt := domain.RoutePoint{
				Lon: utils.Lerp(start.Lon, end.Lon, t) - arc*(end.Lat-start.Lat),
				Lat: utils.Lerp(start.Lat, end.Lat, t) + arc*(end.Lon-start.Lon),
			}
			if i > 0 {
				prev := points[len(points)-1]
				distanceKm += utils.Haversine(prev.Lat, prev.Lon, pt.Lat, pt.Lon)
			}
			points = append(points, pt)
		}
		distanceKm *= v.detourScale
		routes = append(routes, domain.Route{
			Points:          points,
			DistanceKm:      distanceKm,
			DurationSeconds: distanceKm / v.speedKmh * 3600,
		})
	}
	return routes
}

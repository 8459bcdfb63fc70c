package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
	"github.com/satvikkk/travel-aware/internal/risk"
)

// ErrNoRoutes signals that the directions provider returned no
// alternatives between two resolvable locations.
var ErrNoRoutes = errors.New("no routes found")

// PlanRequest is one end-to-end route planning request.
type PlanRequest struct {
	StartLocation       string
	DestinationLocation string
	Window              domain.TimeWindow
	Profile             domain.TravelerProfile
}

// PlanResult is the ranked outcome of a planning request.
type PlanResult struct {
	Start              domain.RoutePoint          `json:"start"`
	Destination        domain.RoutePoint          `json:"destination"`
	Routes             []domain.ScoredRoute       `json:"routes"`
	DominantCategories domain.DominantCategorySet `json:"dominant_categories"`
	IncidentsInView    int                        `json:"incidents_in_view"`
	Timestamp          time.Time                  `json:"timestamp"`
}

// RouteService orchestrates geocoding, directions retrieval, and risk
// scoring for a planning request.
type RouteService struct {
	geocodeSvc    *GeocodeService
	directionsSvc *DirectionsService
	scorer        *risk.Scorer
	repo          ScoreLogRepository

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewRouteService creates a new route service
func NewRouteService(
	geocodeSvc *GeocodeService,
	directionsSvc *DirectionsService,
	scorer *risk.Scorer,
	repo ScoreLogRepository,
) *RouteService {
	return &RouteService{
		geocodeSvc:    geocodeSvc,
		directionsSvc: directionsSvc,
		scorer:        scorer,
		repo:          repo,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *RouteService) WaitBackground() {
	s.wgBg.Wait()
}

// Plan geocodes both endpoints, fetches alternative routes, scores them,
// and returns the candidates sorted by descending suitability.
func (s *RouteService) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	start, err := s.geocodeSvc.Geocode(ctx, req.StartLocation)
	if err != nil {
		return PlanResult{}, err
	}
	dest, err := s.geocodeSvc.Geocode(ctx, req.DestinationLocation)
	if err != nil {
		return PlanResult{}, err
	}

	routes, err := s.directionsSvc.GetRoutes(ctx, start, dest)
	if err != nil {
		return PlanResult{}, err
	}
	if len(routes) == 0 {
		return PlanResult{}, ErrNoRoutes
	}

	result, err := s.scorer.ScoreRoutes(ctx, routes, req.Window, req.Profile)
	if err != nil {
		return PlanResult{}, err
	}

	ranked := make([]domain.ScoredRoute, len(result.Routes))
	copy(ranked, result.Routes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Suitability > ranked[j].Suitability
	})

	plan := PlanResult{
		Start:              start,
		Destination:        dest,
		Routes:             ranked,
		DominantCategories: result.DominantCategories,
		IncidentsInView:    result.IncidentsInView,
		Timestamp:          time.Now(),
	}

	// Persist the request summary asynchronously (tracked for shutdown).
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entry := domain.ScoreLog{
			Origin:             req.StartLocation,
			Destination:        req.DestinationLocation,
			TimeWindow:         req.Window.String(),
			RouteCount:         len(ranked),
			BestSuitability:    ranked[0].Suitability,
			DominantCategories: result.DominantCategories.Labels(),
			Timestamp:          plan.Timestamp,
		}
		if err := s.repo.SaveScoreLog(bgCtx, entry); err != nil {
			log.Printf("Failed to save score log: %v", err)
		}
	}()

	return plan, nil
}

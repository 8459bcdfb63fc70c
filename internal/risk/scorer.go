package risk

import (
	"context"
	"sync"

	"github.com/satvikkk/travel-aware/internal/domain"
)

// Scorer runs the full scoring pipeline: dominant-category resolution,
// per-route spatial risk, normalization, and the suitability blend.
// Stateless apart from the read-only store; safe for concurrent requests.
type Scorer struct {
	store    *Store
	radiusKm float64
}

// NewScorer creates a scorer over the incident store. radiusKm <= 0 uses
// DefaultBufferRadiusKm.
func NewScorer(store *Store, radiusKm float64) *Scorer {
	if radiusKm <= 0 {
		radiusKm = DefaultBufferRadiusKm
	}
	return &Scorer{store: store, radiusKm: radiusKm}
}

// ScoreRoutes scores every candidate route for the traveler and returns
// them in input order together with the resolved dominant categories.
// Route risk evaluation fans out one goroutine per route; candidates are
// independent, so only floating-point rounding distinguishes any
// evaluation order.
func (s *Scorer) ScoreRoutes(
	ctx context.Context,
	routes []domain.Route,
	window domain.TimeWindow,
	profile domain.TravelerProfile,
) (domain.ScoreResult, error) {
	if len(routes) == 0 {
		return domain.ScoreResult{}, domain.ErrEmptyCandidateSet
	}
	if err := ValidateProfile(profile); err != nil {
		return domain.ScoreResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ScoreResult{}, err
	}

	// Pin one snapshot for the whole request; a concurrent reload swaps
	// the store pointer but never this view.
	snap := s.store.Current()
	dominant := ResolveDominantCategories(snap.All(), profile)
	view := snap.FilterByTime(window)
	eval := NewEvaluator(view, s.radiusKm)

	type routeScore struct {
		raw  float64
		norm float64
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		scores   = make([]routeScore, len(routes))
		firstErr error
	)
	for i, route := range routes {
		wg.Add(1)
		go func(i int, route domain.Route) {
			defer wg.Done()
			raw := eval.RouteRisk(route, dominant)
			norm, err := NormalizeRisk(raw, route.DistanceKm)
			mu.Lock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			scores[i] = routeScore{raw: raw, norm: norm}
			mu.Unlock()
		}(i, route)
	}
	wg.Wait()

	if firstErr != nil {
		return domain.ScoreResult{}, firstErr
	}

	normRisks := make([]float64, len(routes))
	durations := make([]float64, len(routes))
	for i, sc := range scores {
		normRisks[i] = sc.norm
		durations[i] = routes[i].DurationSeconds
	}

	suitability, err := BlendSuitability(normRisks, durations, profile.Preference)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	scored := make([]domain.ScoredRoute, len(routes))
	for i, route := range routes {
		scored[i] = domain.ScoredRoute{
			Route:          route,
			RawRisk:        scores[i].raw,
			NormalizedRisk: scores[i].norm,
			Suitability:    suitability[i],
		}
	}
	return domain.ScoreResult{
		Routes:             scored,
		DominantCategories: dominant,
		IncidentsInView:    len(view.Records),
	}, nil
}

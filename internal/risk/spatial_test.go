package risk

import (
	"math"
	"testing"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
)

func incidentAt(lat, lon float64, cat domain.CrimeCategory) domain.IncidentRecord {
	return domain.IncidentRecord{
		Latitude:     float32(lat),
		Longitude:    float32(lon),
		Category:     cat,
		OccurredAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TimeOfDay:    2130,
		VictimAge:    25,
		VictimSex:    domain.SexMale,
		SeverityTier: domain.Tier1,
	}
}

func viewOf(records ...domain.IncidentRecord) IncidentView {
	return IncidentView{Records: records, Window: domain.WindowAll}
}

func straightRoute(points ...domain.RoutePoint) domain.Route {
	return domain.Route{Points: points, DistanceKm: 1.0, DurationSeconds: 300}
}

func TestRouteRiskNoNearbyIncidents(t *testing.T) {
	// Incident roughly 11 km away from every vertex.
	eval := NewEvaluator(viewOf(incidentAt(34.15, -118.24, domain.CategoryTheft)), DefaultBufferRadiusKm)

	route := straightRoute(
		domain.RoutePoint{Lon: -118.24, Lat: 34.05},
		domain.RoutePoint{Lon: -118.23, Lat: 34.05},
	)

	if got := eval.RouteRisk(route, nil); got != 0 {
		t.Errorf("Expected rawRisk 0, got %v", got)
	}
}

func TestRouteRiskVertexHit(t *testing.T) {
	eval := NewEvaluator(viewOf(incidentAt(34.05, -118.24, domain.CategoryTheft)), DefaultBufferRadiusKm)

	route := straightRoute(domain.RoutePoint{Lon: -118.24, Lat: 34.05})

	want := float64(domain.CategoryTheft.Weight())
	if got := eval.RouteRisk(route, nil); got != want {
		t.Errorf("Expected rawRisk %v, got %v", want, got)
	}
}

func TestRouteRiskDominantMultiplier(t *testing.T) {
	view := viewOf(incidentAt(34.05, -118.24, domain.CategoryTheft))
	eval := NewEvaluator(view, DefaultBufferRadiusKm)
	route := straightRoute(domain.RoutePoint{Lon: -118.24, Lat: 34.05})

	base := eval.RouteRisk(route, nil)
	boosted := eval.RouteRisk(route, domain.DominantCategorySet{domain.CategoryTheft})

	want := float64(domain.CategoryTheft.Weight()) * 1.2
	if math.Abs(boosted-want) > 1e-9 {
		t.Errorf("Expected boosted risk %v, got %v", want, boosted)
	}
	if math.Abs(boosted-base*1.2) > 1e-9 {
		t.Errorf("Dominant incident must add weight*1.2: base %v, boosted %v", base, boosted)
	}
}

func TestRouteRiskIncidentCountedOnce(t *testing.T) {
	// Many vertices inside the buffer of one incident: it counts once.
	eval := NewEvaluator(viewOf(incidentAt(34.05, -118.24, domain.CategoryRobbery)), DefaultBufferRadiusKm)

	route := straightRoute(
		domain.RoutePoint{Lon: -118.2401, Lat: 34.0500},
		domain.RoutePoint{Lon: -118.2400, Lat: 34.0501},
		domain.RoutePoint{Lon: -118.2399, Lat: 34.0500},
	)

	want := float64(domain.CategoryRobbery.Weight())
	if got := eval.RouteRisk(route, nil); got != want {
		t.Errorf("Expected rawRisk %v, got %v", want, got)
	}
}

func TestRouteRiskDuplicateCoordinates(t *testing.T) {
	// Duplicate-coordinate rows are a dataset property, not an error;
	// each row accumulates.
	eval := NewEvaluator(viewOf(
		incidentAt(34.05, -118.24, domain.CategoryTheft),
		incidentAt(34.05, -118.24, domain.CategoryAssault),
	), DefaultBufferRadiusKm)

	route := straightRoute(domain.RoutePoint{Lon: -118.24, Lat: 34.05})

	want := float64(domain.CategoryTheft.Weight() + domain.CategoryAssault.Weight())
	if got := eval.RouteRisk(route, nil); got != want {
		t.Errorf("Expected rawRisk %v, got %v", want, got)
	}
}

func TestRouteRiskBufferEdge(t *testing.T) {
	// ~0.1 km east of the vertex: inside the 0.16 km buffer.
	// ~0.3 km east: outside.
	const latRef = 34.05
	inside := incidentAt(latRef, -118.24+0.1/(111.320*math.Cos(latRef*math.Pi/180)), domain.CategoryTheft)
	outside := incidentAt(latRef, -118.24+0.3/(111.320*math.Cos(latRef*math.Pi/180)), domain.CategoryHomicide)

	eval := NewEvaluator(viewOf(inside, outside), DefaultBufferRadiusKm)
	route := straightRoute(domain.RoutePoint{Lon: -118.24, Lat: latRef})

	want := float64(domain.CategoryTheft.Weight())
	if got := eval.RouteRisk(route, nil); got != want {
		t.Errorf("Expected only the inside incident (%v), got %v", want, got)
	}
}

func TestRouteRiskUnknownCategoryContributesNothing(t *testing.T) {
	eval := NewEvaluator(viewOf(incidentAt(34.05, -118.24, domain.CategoryUnknown)), DefaultBufferRadiusKm)
	route := straightRoute(domain.RoutePoint{Lon: -118.24, Lat: 34.05})

	if got := eval.RouteRisk(route, nil); got != 0 {
		t.Errorf("Unknown category must contribute 0, got %v", got)
	}
}

func TestRouteRiskEmptyView(t *testing.T) {
	eval := NewEvaluator(viewOf(), DefaultBufferRadiusKm)
	route := straightRoute(domain.RoutePoint{Lon: -118.24, Lat: 34.05})

	if got := eval.RouteRisk(route, nil); got != 0 {
		t.Errorf("Expected 0 over empty view, got %v", got)
	}
}

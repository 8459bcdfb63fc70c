package domain

// RoutePoint is a single polyline vertex as (longitude, latitude) in
// decimal degrees, matching the directions provider's coordinate order.
type RoutePoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Route is one candidate route between two points, produced by the
// directions provider and consumed read-only by the scoring core.
type Route struct {
	Points          []RoutePoint `json:"points"`
	DistanceKm      float64      `json:"distance_km"`
	DurationSeconds float64      `json:"duration_seconds"`
}

// TravelerProfile describes the requester for demographic risk weighting.
// TravelTimeMinutes uses the dataset's HHMM clock encoding; 1200 doubles
// as the "no time provided" sentinel (see the profile resolver).
// Preference runs from 0 (purely lowest risk) to 1 (purely shortest time).
type TravelerProfile struct {
	AgeYears          int     `json:"age_years"`
	Sex               Sex     `json:"sex"`
	TravelTimeMinutes int     `json:"travel_time"`
	Preference        float64 `json:"preference"`
}

// NoTravelTime is the HHMM placeholder meaning no specific travel time was
// provided. The resolver excludes incidents stamped exactly 1200 in that
// case instead of filtering to the noon hour.
const NoTravelTime = 1200

// DominantCategorySet holds the up-to-three categories most frequent among
// incidents matching a traveler's demographic and time-of-travel profile.
// An empty set is a valid outcome, not an error.
type DominantCategorySet []CrimeCategory

// Contains reports membership of a category in the set.
func (d DominantCategorySet) Contains(c CrimeCategory) bool {
	for _, m := range d {
		if m == c {
			return true
		}
	}
	return false
}

// Labels returns the dataset labels for API responses.
func (d DominantCategorySet) Labels() []string {
	labels := make([]string, len(d))
	for i, c := range d {
		labels[i] = c.String()
	}
	return labels
}

// ScoredRoute is one candidate route with its risk and blended suitability.
// Suitability values across a candidate set sum to 1.
type ScoredRoute struct {
	Route          Route   `json:"route"`
	RawRisk        float64 `json:"raw_risk"`
	NormalizedRisk float64 `json:"normalized_risk"`
	Suitability    float64 `json:"suitability"`
}

// ScoreResult wraps a full scoring run so the caller can surface the
// resolved dominant categories alongside the ranked routes.
type ScoreResult struct {
	Routes             []ScoredRoute       `json:"routes"`
	DominantCategories DominantCategorySet `json:"dominant_categories"`
	IncidentsInView    int                 `json:"incidents_in_view"`
}

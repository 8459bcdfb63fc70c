package risk

import (
	"math"

	"github.com/satvikkk/travel-aware/internal/domain"
	"github.com/satvikkk/travel-aware/pkg/utils"
)

// DefaultBufferRadiusKm is the proximity radius within which an incident
// affects a route's risk.
const DefaultBufferRadiusKm = 0.16

// dominantMultiplier boosts incidents whose category is in the traveler's
// dominant set.
const dominantMultiplier = 1.2

const kmPerDegreeLat = 110.574
const kmPerDegreeLonEquator = 111.320

// Evaluator computes buffered proximity risk for routes against one
// incident view. Incidents are bucketed into a uniform lat/lon grid sized
// from the buffer radius, so each route vertex only tests its neighboring
// cells instead of the whole table.
type Evaluator struct {
	records     []domain.IncidentRecord
	radiusKm    float64
	cellSizeDeg float64
	cells       map[cellKey][]int32
}

type cellKey struct {
	x, y int32
}

// NewEvaluator indexes the view's incidents for proximity queries.
func NewEvaluator(view IncidentView, radiusKm float64) *Evaluator {
	if radiusKm <= 0 {
		radiusKm = DefaultBufferRadiusKm
	}

	e := &Evaluator{
		records:     view.Records,
		radiusKm:    radiusKm,
		cellSizeDeg: radiusKm / kmPerDegreeLat,
		cells:       make(map[cellKey][]int32, len(view.Records)),
	}
	for i, r := range view.Records {
		k := e.keyFor(float64(r.Longitude), float64(r.Latitude))
		e.cells[k] = append(e.cells[k], int32(i))
	}
	return e
}

func (e *Evaluator) keyFor(lon, lat float64) cellKey {
	return cellKey{
		x: int32(math.Floor(lon / e.cellSizeDeg)),
		y: int32(math.Floor(lat / e.cellSizeDeg)),
	}
}

// RouteRisk accumulates the weighted risk of every incident within the
// buffer radius of at least one route vertex. Proximity is tested against
// the discrete vertex sequence, not interpolated segments; each incident
// counts once no matter how many vertices it is near. Pure function of its
// inputs.
func (e *Evaluator) RouteRisk(route domain.Route, dominant domain.DominantCategorySet) float64 {
	if len(e.records) == 0 || len(route.Points) == 0 {
		return 0
	}

	var raw float64
	counted := make(map[int32]struct{})

	for _, pt := range route.Points {
		center := e.keyFor(pt.Lon, pt.Lat)

		// Longitude degrees shrink with latitude, so the lon search span
		// widens accordingly. Clamped for near-polar coordinates.
		cosLat := math.Cos(pt.Lat * math.Pi / 180)
		if cosLat < 0.01 {
			cosLat = 0.01
		}
		lonSpan := int32(math.Ceil(e.radiusKm / (kmPerDegreeLonEquator * cosLat) / e.cellSizeDeg))

		for dy := int32(-1); dy <= 1; dy++ {
			for dx := -lonSpan; dx <= lonSpan; dx++ {
				bucket := e.cells[cellKey{x: center.x + dx, y: center.y + dy}]
				for _, idx := range bucket {
					if _, done := counted[idx]; done {
						continue
					}
					rec := e.records[idx]
					d := utils.Haversine(float64(rec.Latitude), float64(rec.Longitude), pt.Lat, pt.Lon)
					if d > e.radiusKm {
						continue
					}
					counted[idx] = struct{}{}

					w := float64(rec.Category.Weight())
					if dominant.Contains(rec.Category) {
						w *= dominantMultiplier
					}
					raw += w
				}
			}
		}
	}
	return raw
}

package risk

import (
	"fmt"
	"math"

	"github.com/satvikkk/travel-aware/internal/domain"
	"github.com/satvikkk/travel-aware/pkg/utils"
)

// distanceEpsilon keeps zero-length routes from dividing by zero.
const distanceEpsilon = 1e-6

// NormalizeRisk converts a route's raw risk into a per-kilometer score
// rounded to 4 decimal places.
func NormalizeRisk(rawRisk, distanceKm float64) (float64, error) {
	if math.IsNaN(rawRisk) || math.IsInf(rawRisk, 0) || rawRisk < 0 {
		return 0, fmt.Errorf("score: %w: raw risk %v", domain.ErrComputation, rawRisk)
	}
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0, fmt.Errorf("score: %w: distance %v", domain.ErrComputation, distanceKm)
	}
	return utils.RoundTo(rawRisk/(distanceKm+distanceEpsilon), 4), nil
}

// BlendSuitability combines normalized risk and duration under the
// traveler's preference weight into a distribution over the candidates:
// score_i = pref/duration_i + (1-pref)*safety_i, normalized to sum to 1.
//
// Zero-risk policy: a candidate with normalizedRisk == 0 takes the largest
// inverse-risk term among the candidates (it is at least as safe as the
// safest positive-risk route); when every candidate is zero-risk the
// safety terms are equal. Non-positive or non-finite duration is rejected.
func BlendSuitability(normRisks, durations []float64, preference float64) ([]float64, error) {
	if len(normRisks) == 0 {
		return nil, domain.ErrEmptyCandidateSet
	}
	if len(normRisks) != len(durations) {
		return nil, fmt.Errorf("score: %w: %d risks vs %d durations",
			domain.ErrComputation, len(normRisks), len(durations))
	}

	preference = utils.Clamp(preference, 0, 1)

	maxSafety := 0.0
	for i, r := range normRisks {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return nil, fmt.Errorf("score: %w: normalized risk %v", domain.ErrComputation, r)
		}
		d := durations[i]
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			return nil, fmt.Errorf("score: %w: duration %v", domain.ErrComputation, d)
		}
		if r > 0 && 1/r > maxSafety {
			maxSafety = 1 / r
		}
	}
	if maxSafety == 0 {
		// Every candidate is zero-risk; safety contributes equally.
		maxSafety = 1
	}

	scores := make([]float64, len(normRisks))
	var total float64
	for i, r := range normRisks {
		safety := maxSafety
		if r > 0 {
			safety = 1 / r
		}
		scores[i] = preference*(1/durations[i]) + (1-preference)*safety
		total += scores[i]
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("score: %w: degenerate score total %v", domain.ErrComputation, total)
	}

	for i := range scores {
		scores[i] /= total
	}
	return scores, nil
}

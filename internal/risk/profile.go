package risk

import (
	"math"
	"sort"

	"github.com/satvikkk/travel-aware/internal/domain"
)

// maxProfileSample caps how many tier-sorted incidents feed the category
// frequency count.
const maxProfileSample = 100

// maxDominantCategories bounds the resolved set.
const maxDominantCategories = 3

// ValidateProfile rejects profiles the resolver cannot interpret.
func ValidateProfile(p domain.TravelerProfile) error {
	if p.AgeYears <= 0 || p.AgeYears > 130 {
		return domain.ErrInvalidProfile
	}
	if p.Sex != domain.SexMale && p.Sex != domain.SexFemale {
		return domain.ErrInvalidProfile
	}
	if p.TravelTimeMinutes < 0 || p.TravelTimeMinutes > 2359 || p.TravelTimeMinutes%100 > 59 {
		return domain.ErrInvalidProfile
	}
	if math.IsNaN(p.Preference) || p.Preference < 0 || p.Preference > 1 {
		return domain.ErrInvalidProfile
	}
	return nil
}

// ResolveDominantCategories determines the categories most frequent among
// incidents matching the traveler's age band, sex, and clock hour.
// It deliberately runs over the unfiltered table: demographic exposure is
// an overall property, not a recent-activity one. An empty result is
// valid and means no incidents matched.
func ResolveDominantCategories(records []domain.IncidentRecord, p domain.TravelerProfile) domain.DominantCategorySet {
	bandLo := (p.AgeYears / 10) * 10
	bandHi := bandLo + 9

	matched := make([]domain.IncidentRecord, 0, 256)
	for _, r := range records {
		if r.VictimAge < bandLo || r.VictimAge > bandHi {
			continue
		}
		if r.VictimSex != p.Sex {
			continue
		}
		if !matchesTravelHour(r.TimeOfDay, p.TravelTimeMinutes) {
			continue
		}
		matched = append(matched, r)
	}

	// Tier1 incidents first; stable so dataset order breaks ties.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SeverityTier < matched[j].SeverityTier
	})

	if len(matched) > maxProfileSample {
		matched = matched[:maxProfileSample]
	}

	counts := make(map[domain.CrimeCategory]int)
	order := make([]domain.CrimeCategory, 0, 16)
	for _, r := range matched {
		if counts[r.Category] == 0 {
			order = append(order, r.Category)
		}
		counts[r.Category]++
	}

	// Top categories by frequency, ties broken by encounter order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxDominantCategories {
		order = order[:maxDominantCategories]
	}
	return domain.DominantCategorySet(order)
}

// matchesTravelHour applies the clock-hour filter. The HHMM value 1200 is
// the "no time provided" placeholder: in that case incidents stamped
// exactly 1200 are excluded rather than filtered to, since a bulk of
// placeholder-stamped rows carries no time signal.
func matchesTravelHour(incidentTime, travelTime int) bool {
	if travelTime == domain.NoTravelTime {
		return incidentTime != domain.NoTravelTime
	}
	return incidentTime/100 == travelTime/100
}

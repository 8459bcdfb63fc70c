package domain

import "time"

// CrimeCategory is the closed set of incident categories known to the
// weight table. Labels outside the set map to CategoryUnknown.
type CrimeCategory int

const (
	CategoryUnknown CrimeCategory = iota
	CategoryTheft
	CategoryBurglary
	CategoryRobbery
	CategoryAssault
	CategoryBattery
	CategoryVehicleTheft
	CategoryVandalism
	CategorySexualAssault
	CategoryKidnapping
	CategoryHomicide
)

var categoryLabels = map[CrimeCategory]string{
	CategoryUnknown:       "UNKNOWN",
	CategoryTheft:         "THEFT",
	CategoryBurglary:      "BURGLARY",
	CategoryRobbery:       "ROBBERY",
	CategoryAssault:       "ASSAULT",
	CategoryBattery:       "BATTERY",
	CategoryVehicleTheft:  "VEHICLE THEFT",
	CategoryVandalism:     "VANDALISM",
	CategorySexualAssault: "SEXUAL ASSAULT",
	CategoryKidnapping:    "KIDNAPPING",
	CategoryHomicide:      "HOMICIDE",
}

var categoryByLabel = func() map[string]CrimeCategory {
	m := make(map[string]CrimeCategory, len(categoryLabels))
	for c, label := range categoryLabels {
		m[label] = c
	}
	return m
}()

// RiskWeights maps every known category to a severity weight (1-10).
// Defined once at startup, never mutated. CategoryUnknown carries 0 so
// unrecognized labels contribute nothing to a route's risk.
var RiskWeights = map[CrimeCategory]int{
	CategoryUnknown:       0,
	CategoryTheft:         6,
	CategoryBurglary:      5,
	CategoryRobbery:       8,
	CategoryAssault:       7,
	CategoryBattery:       6,
	CategoryVehicleTheft:  5,
	CategoryVandalism:     2,
	CategorySexualAssault: 9,
	CategoryKidnapping:    9,
	CategoryHomicide:      10,
}

// String returns the dataset label for the category.
func (c CrimeCategory) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return "UNKNOWN"
}

// Weight returns the category's severity weight, 0 for unknown categories.
func (c CrimeCategory) Weight() int {
	return RiskWeights[c]
}

// ParseCategory resolves a dataset label to its enum value.
// Unrecognized labels resolve to CategoryUnknown; that is not an error.
func ParseCategory(label string) CrimeCategory {
	if c, ok := categoryByLabel[label]; ok {
		return c
	}
	return CategoryUnknown
}

// KnownCategories lists every category covered by the weight table,
// excluding CategoryUnknown, in enum order.
func KnownCategories() []CrimeCategory {
	cats := make([]CrimeCategory, 0, len(categoryLabels)-1)
	for c := CategoryTheft; c <= CategoryHomicide; c++ {
		cats = append(cats, c)
	}
	return cats
}

// Sex is the recorded victim sex on an incident.
type Sex int

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

// ParseSex resolves the dataset's single-letter encoding.
func ParseSex(s string) Sex {
	switch s {
	case "M", "m":
		return SexMale
	case "F", "f":
		return SexFemale
	default:
		return SexUnknown
	}
}

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "M"
	case SexFemale:
		return "F"
	default:
		return "X"
	}
}

// SeverityTier is the dataset's two-level priority ranking.
type SeverityTier int

const (
	Tier1 SeverityTier = 1 // higher priority
	Tier2 SeverityTier = 2
)

// IncidentRecord is one historical incident. Records are created at load
// time and immutable thereafter; the snapshot they belong to lives for the
// process (or until an atomic reload replaces it).
type IncidentRecord struct {
	Latitude  float32       `json:"lat"`
	Longitude float32       `json:"lon"`
	Category  CrimeCategory `json:"category"`
	// OccurredAt is the incident date; TimeOfDay is the dataset's HHMM
	// clock encoding (0-2359), kept separately because the demographic
	// resolver filters on clock hour, not date.
	OccurredAt   time.Time    `json:"occurred_at"`
	TimeOfDay    int          `json:"time_of_day"`
	VictimAge    int          `json:"victim_age"` // 0 = unknown
	VictimSex    Sex          `json:"victim_sex"`
	SeverityTier SeverityTier `json:"severity_tier"`
}

// TimeWindow selects how far back from the dataset cutoff a view reaches.
type TimeWindow int

const (
	WindowAll TimeWindow = iota
	Window7d
	Window30d
	Window180d
	Window365d
)

// Days returns the window length in days, 0 for WindowAll.
func (w TimeWindow) Days() int {
	switch w {
	case Window7d:
		return 7
	case Window30d:
		return 30
	case Window180d:
		return 180
	case Window365d:
		return 365
	default:
		return 0
	}
}

func (w TimeWindow) String() string {
	if w == WindowAll {
		return "all"
	}
	return map[TimeWindow]string{
		Window7d:   "7d",
		Window30d:  "30d",
		Window180d: "180d",
		Window365d: "365d",
	}[w]
}

// ParseTimeWindow resolves the API's window strings. Unrecognized values
// fall back to WindowAll with ok=false so handlers can reject them.
func ParseTimeWindow(s string) (TimeWindow, bool) {
	switch s {
	case "7d":
		return Window7d, true
	case "30d":
		return Window30d, true
	case "180d":
		return Window180d, true
	case "365d":
		return Window365d, true
	case "all", "":
		return WindowAll, true
	default:
		return WindowAll, false
	}
}

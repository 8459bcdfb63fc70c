package risk

import (
	"testing"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
)

func incidentOn(date string, cat domain.CrimeCategory) domain.IncidentRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return domain.IncidentRecord{
		Latitude:     34.05,
		Longitude:    -118.24,
		Category:     cat,
		OccurredAt:   d,
		TimeOfDay:    1000,
		VictimAge:    30,
		VictimSex:    domain.SexMale,
		SeverityTier: domain.Tier2,
	}
}

func TestFilterByTimeWindows(t *testing.T) {
	// Cutoff is 2024-06-30; one incident per window band.
	snap := NewSnapshot([]domain.IncidentRecord{
		incidentOn("2024-06-30", domain.CategoryTheft),    // day 0
		incidentOn("2024-06-27", domain.CategoryAssault),  // 3 days back
		incidentOn("2024-06-10", domain.CategoryRobbery),  // 20 days back
		incidentOn("2024-03-01", domain.CategoryBurglary), // ~120 days back
		incidentOn("2023-09-01", domain.CategoryHomicide), // ~300 days back
		incidentOn("2022-01-01", domain.CategoryBattery),  // years back
	})

	testCases := []struct {
		window domain.TimeWindow
		want   int
	}{
		{domain.Window7d, 2},
		{domain.Window30d, 3},
		{domain.Window180d, 4},
		{domain.Window365d, 5},
		{domain.WindowAll, 6},
	}

	for _, tc := range testCases {
		t.Run(tc.window.String(), func(t *testing.T) {
			view := snap.FilterByTime(tc.window)
			if len(view.Records) != tc.want {
				t.Errorf("Window %s: expected %d records, got %d", tc.window, tc.want, len(view.Records))
			}
		})
	}
}

func TestFilterByTimeMonotonic(t *testing.T) {
	snap := NewSnapshot([]domain.IncidentRecord{
		incidentOn("2024-06-30", domain.CategoryTheft),
		incidentOn("2024-06-20", domain.CategoryTheft),
		incidentOn("2024-05-01", domain.CategoryTheft),
		incidentOn("2023-01-01", domain.CategoryTheft),
	})

	windows := []domain.TimeWindow{
		domain.Window7d, domain.Window30d, domain.Window180d, domain.Window365d, domain.WindowAll,
	}

	prev := -1
	for _, w := range windows {
		n := len(snap.FilterByTime(w).Records)
		if n < prev {
			t.Errorf("Window %s returned %d records, fewer than the narrower window's %d", w, n, prev)
		}
		prev = n
	}
}

func TestStoreSwap(t *testing.T) {
	first := NewSnapshot([]domain.IncidentRecord{incidentOn("2024-01-01", domain.CategoryTheft)})
	store := NewStore(first)

	pinned := store.Current()

	second := NewSnapshot([]domain.IncidentRecord{
		incidentOn("2024-01-01", domain.CategoryTheft),
		incidentOn("2024-02-01", domain.CategoryAssault),
	})
	store.Swap(second)

	if store.Current().Len() != 2 {
		t.Errorf("Expected swapped snapshot with 2 records, got %d", store.Current().Len())
	}
	// A snapshot pinned before the swap is untouched.
	if pinned.Len() != 1 {
		t.Errorf("Pinned snapshot mutated: expected 1 record, got %d", pinned.Len())
	}
}

func TestEmptySnapshot(t *testing.T) {
	snap := NewSnapshot(nil)
	if snap.Len() != 0 {
		t.Fatalf("Expected empty snapshot, got %d", snap.Len())
	}
	if got := len(snap.FilterByTime(domain.Window30d).Records); got != 0 {
		t.Errorf("Expected empty view, got %d records", got)
	}
}

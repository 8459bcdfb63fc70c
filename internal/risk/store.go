package risk

import (
	"sync/atomic"
	"time"

	"github.com/satvikkk/travel-aware/internal/domain"
)

// Snapshot is one immutable load of the incident table. The cutoff is the
// latest occurrence date observed in the data, so time-window views are
// reproducible against a static dataset rather than drifting with the
// wall clock.
type Snapshot struct {
	records []domain.IncidentRecord
	cutoff  time.Time
}

// NewSnapshot builds a snapshot over the given records. The slice is owned
// by the snapshot after the call and must not be mutated.
func NewSnapshot(records []domain.IncidentRecord) *Snapshot {
	var cutoff time.Time
	for _, r := range records {
		if r.OccurredAt.After(cutoff) {
			cutoff = r.OccurredAt
		}
	}
	return &Snapshot{records: records, cutoff: cutoff}
}

// All returns the full unfiltered incident table.
func (s *Snapshot) All() []domain.IncidentRecord {
	return s.records
}

// Len returns the number of incidents in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Cutoff returns the snapshot's reference date.
func (s *Snapshot) Cutoff() time.Time {
	return s.cutoff
}

// IncidentView is a time-filtered read-only view over a snapshot.
type IncidentView struct {
	Records []domain.IncidentRecord
	Window  domain.TimeWindow
}

// FilterByTime returns the incidents with occurredAt within the window
// measured back from the snapshot cutoff. WindowAll shares the full table
// without copying.
func (s *Snapshot) FilterByTime(window domain.TimeWindow) IncidentView {
	if window.Days() == 0 {
		return IncidentView{Records: s.records, Window: window}
	}

	since := s.cutoff.AddDate(0, 0, -window.Days())
	filtered := make([]domain.IncidentRecord, 0, len(s.records))
	for _, r := range s.records {
		if !r.OccurredAt.Before(since) {
			filtered = append(filtered, r)
		}
	}
	return IncidentView{Records: filtered, Window: window}
}

// Store holds the current snapshot behind an atomic pointer so a reload
// swaps a complete table and in-flight scoring never observes a partial
// update.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store seeded with the given snapshot.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.current.Store(snap)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap atomically replaces the active snapshot.
func (s *Store) Swap(snap *Snapshot) {
	s.current.Store(snap)
}

package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/quay/internal/dataset"
)

// Snapshot represents the latest dataset available to the UI.
type Snapshot struct {
	Data                *dataset.Dataset
	LastLoaded          time.Time // time of the last successful load
	LastUpdated         time.Time // time of the last attempt, successful or not
	LastError           error
	ConsecutiveFailures int
	Version             uint64 // incremented on every successful load
}

// HasData reports whether a dataset has been loaded at least once.
func (s Snapshot) HasData() bool {
	return s.Data != nil
}

// IsStale returns true when reloads have failed repeatedly.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored dataset. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(ds *dataset.Dataset, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = now
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Data = ds.Clone()
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = now
	s.snapshot.LastLoaded = now
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Version++
}

// Version returns the current dataset version without copying the data.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Version
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = s.snapshot.Data.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

package store

import (
	"sync"
	"time"

	"github.com/i474232898/soaring-forecast/internal/forecast"
)

// MemoryStore is a concurrency-safe in-memory forecast store that keeps a
// bounded history of snapshots per location.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location id, value: snapshots ordered by FetchedAt ascending
	data map[string][]forecast.Snapshot

	// retention configuration
	maxHistory int           // max number of snapshots per location
	maxAge     time.Duration // optional max age for snapshots

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]forecast.Snapshot),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a snapshot for its location and enforces retention. The
// newest snapshot is always kept.
func (s *MemoryStore) Save(snap forecast.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[snap.LocationID], snap)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history)-1; i++ {
			if !history[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		history = history[i:]
	}

	s.data[snap.LocationID] = history
	return nil
}

// Latest returns the most recent snapshot for a location.
func (s *MemoryStore) Latest(locationID string) (forecast.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[locationID]
	if len(history) == 0 {
		return forecast.Snapshot{}, forecast.ErrNotFound
	}
	return history[len(history)-1], nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

package forecast

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched report is served before refreshing.
const DefaultCacheTTL = 30 * time.Minute

// Fetcher retrieves a fresh report from the upstream forecast source.
type Fetcher interface {
	Fetch(ctx context.Context, locationID string) (Snapshot, error)
}

// Store persists fetched snapshots.
type Store interface {
	Save(snap Snapshot) error
	Latest(locationID string) (Snapshot, error)
}

// Service serves cached forecasts and refreshes them when stale.
type Service struct {
	fetcher  Fetcher
	store    Store
	ttl      time.Duration
	location *time.Location
	now      func() time.Time

	// refreshing serialises upstream fetches so concurrent page loads
	// trigger a single refresh.
	refreshing sync.Mutex
}

// NewService creates a Service. A ttl <= 0 uses DefaultCacheTTL and a nil
// location uses UTC for deciding what "today" is.
func NewService(fetcher Fetcher, store Store, ttl time.Duration, location *time.Location) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		fetcher:  fetcher,
		store:    store,
		ttl:      ttl,
		location: location,
		now:      time.Now,
	}
}

// Now returns the current time in the service's location.
func (s *Service) Now() time.Time {
	return s.now().In(s.location)
}

// Get returns the stored snapshot for locationID if it is younger than the
// cache TTL, otherwise it refreshes from upstream.
func (s *Service) Get(ctx context.Context, locationID string) (Snapshot, error) {
	if snap, ok := s.fresh(locationID); ok {
		return snap, nil
	}

	s.refreshing.Lock()
	defer s.refreshing.Unlock()

	// Another caller may have refreshed while we waited.
	if snap, ok := s.fresh(locationID); ok {
		return snap, nil
	}

	return s.refreshLocked(ctx, locationID)
}

// Refresh fetches and stores a new snapshot regardless of cache age.
func (s *Service) Refresh(ctx context.Context, locationID string) (Snapshot, error) {
	s.refreshing.Lock()
	defer s.refreshing.Unlock()

	return s.refreshLocked(ctx, locationID)
}

// View returns the formatted forecast for locationID.
func (s *Service) View(ctx context.Context, locationID string) (View, error) {
	snap, err := s.Get(ctx, locationID)
	if err != nil {
		return View{}, err
	}
	return BuildView(snap, s.Now()), nil
}

func (s *Service) fresh(locationID string) (Snapshot, bool) {
	snap, err := s.store.Latest(locationID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("ERROR: reading cached forecast for %s: %v", locationID, err)
		}
		return Snapshot{}, false
	}
	if s.now().Sub(snap.FetchedAt) >= s.ttl {
		return Snapshot{}, false
	}
	return snap, true
}

func (s *Service) refreshLocked(ctx context.Context, locationID string) (Snapshot, error) {
	log.Printf("INFO: refreshing forecast for location %s", locationID)

	snap, err := s.fetcher.Fetch(ctx, locationID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("refresh forecast: %w", err)
	}
	if snap.LocationID == "" {
		snap.LocationID = locationID
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = s.now().UTC()
	}

	if err := s.store.Save(snap); err != nil {
		// The fetched data is still good for this request.
		log.Printf("ERROR: storing forecast for %s: %v", locationID, err)
	}
	return snap, nil
}

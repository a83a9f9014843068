package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RosterLoader fetches the roster from its backing store (students.json).
type RosterLoader interface {
	LoadRoster(ctx context.Context) ([]string, error)
}

// RosterRepository caches the roster with a TTL. A TTL of zero reloads on every call.
type RosterRepository struct {
	loader RosterLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu     sync.RWMutex
	cached []string
	expiry time.Time
}

func NewRosterRepository(loader RosterLoader, ttl time.Duration) *RosterRepository {
	return &RosterRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RosterRepository) Roster(ctx context.Context) ([]string, error) {
	if roster, ok := r.fresh(r.clock()); ok {
		return roster, nil
	}

	result, err, _ := r.sf.Do("roster", func() (interface{}, error) {
		now := r.clock()
		if roster, ok := r.fresh(now); ok {
			return roster, nil
		}

		roster, err := r.loader.LoadRoster(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cached = roster
		r.expiry = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return roster, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Invalidate drops the cached roster, e.g. after an import.
func (r *RosterRepository) Invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.expiry = time.Time{}
	r.mu.Unlock()
}

func (r *RosterRepository) fresh(now time.Time) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cached != nil && r.expiry.After(now) {
		return r.cached, true
	}
	return nil, false
}

func (r *RosterRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticRosterLoader serves a fixed roster (useful for tests/demos).
type StaticRosterLoader struct {
	roster []string
}

func NewStaticRosterLoader(roster ...string) *StaticRosterLoader {
	return &StaticRosterLoader{roster: roster}
}

func (l *StaticRosterLoader) LoadRoster(_ context.Context) ([]string, error) {
	return l.roster, nil
}

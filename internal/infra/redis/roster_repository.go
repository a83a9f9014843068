package redis

import (
	"context"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RosterLoader fetches the roster from its backing store (students.json).
type RosterLoader interface {
	LoadRoster(ctx context.Context) ([]string, error)
}

// RosterRepository caches the roster in a Redis set shared by every instance and
// falls back to the loader on a miss:
//
//	SADD roster:members {regNumber...}
//
// A non-positive TTL disables caching. An empty roster is never cached.
type RosterRepository struct {
	client *redis.Client
	loader RosterLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

const rosterKey = "roster:members"

func NewRosterRepository(client *redis.Client, loader RosterLoader, ttl time.Duration) *RosterRepository {
	return &RosterRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RosterRepository) Roster(ctx context.Context) ([]string, error) {
	if r.ttl <= 0 {
		return r.loader.LoadRoster(ctx)
	}

	members, err := r.client.SMembers(ctx, rosterKey).Result()
	if err == nil && len(members) > 0 {
		return members, nil
	}

	result, err, _ := r.sf.Do(rosterKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		members, err := r.client.SMembers(ctx, rosterKey).Result()
		if err == nil && len(members) > 0 {
			return members, nil
		}

		roster, err := r.loader.LoadRoster(ctx)
		if err != nil {
			return nil, err
		}
		if len(roster) == 0 {
			return roster, nil
		}

		values := make([]interface{}, len(roster))
		for i, reg := range roster {
			values[i] = reg
		}
		pipe := r.client.TxPipeline()
		pipe.Del(ctx, rosterKey)
		pipe.SAdd(ctx, rosterKey, values...)
		pipe.Expire(ctx, rosterKey, r.ttlWithJitter())
		// a failed cache fill only costs a reload on the next login
		_, _ = pipe.Exec(ctx)

		return roster, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Invalidate drops the shared cache, e.g. after a roster import.
func (r *RosterRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, rosterKey).Err()
}

func (r *RosterRepository) ttlWithJitter() time.Duration {
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

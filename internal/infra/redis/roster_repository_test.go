package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"quiz-admin-service/internal/infra/memory"
)

func TestRosterRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{RosterLoader: memory.NewStaticRosterLoader("CS/2024/001", "CS/2024/002")}
	repo := NewRosterRepository(newClient(mr), loader, time.Minute)

	roster, err := repo.Roster(context.Background())
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 2 || loader.calls != 1 {
		t.Fatalf("expected 2 entries from one load, got %v calls=%d", roster, loader.calls)
	}
	if !mr.Exists(rosterKey) {
		t.Fatalf("expected roster key to be set")
	}

	// Second call should hit cache, loader not incremented.
	roster, _ = repo.Roster(context.Background())
	if loader.calls != 1 || len(roster) != 2 {
		t.Fatalf("expected cache hit, loader calls=%d roster=%v", loader.calls, roster)
	}

	if err := repo.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.Roster(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

func TestRosterRepositoryZeroTTLBypassesRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{RosterLoader: memory.NewStaticRosterLoader("CS/2024/001")}
	repo := NewRosterRepository(newClient(mr), loader, 0)

	_, _ = repo.Roster(context.Background())
	_, _ = repo.Roster(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected a load per call, got %d", loader.calls)
	}
	if mr.Exists(rosterKey) {
		t.Fatalf("expected nothing cached with zero ttl")
	}
}

type countingLoader struct {
	memory.RosterLoader
	calls int
}

func (l *countingLoader) LoadRoster(ctx context.Context) ([]string, error) {
	l.calls++
	return l.RosterLoader.LoadRoster(ctx)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

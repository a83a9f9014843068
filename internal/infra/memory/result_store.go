package memory

import (
	"context"
	"sync"

	"quiz-admin-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]domain.Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[string]domain.Result),
	}
}

func (s *ResultStore) SaveResult(_ context.Context, result domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = result
	return nil
}

func (s *ResultStore) FindResult(ctx context.Context, regNumber string) (domain.Result, bool, error) {
	results, _ := s.ListResults(ctx)
	for _, r := range results {
		if r.RegNumber == regNumber {
			return r, true, nil
		}
	}
	return domain.Result{}, false, nil
}

func (s *ResultStore) ListResults(_ context.Context) ([]domain.Result, error) {
	s.mu.RLock()
	results := make([]domain.Result, 0, len(s.results))
	for _, r := range s.results {
		results = append(results, r)
	}
	s.mu.RUnlock()

	domain.SortNewestFirst(results)
	return results, nil
}

func (s *ResultStore) DeleteResults(_ context.Context, results []domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		delete(s.results, r.ID)
	}
	return nil
}

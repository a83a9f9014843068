package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"quiz-admin-service/internal/domain"
)

// ResultStore keeps results in Redis:
//
//	SET  {prefix}:doc:{id}   JSON result
//	ZADD {prefix}:index      {unixMillis} {id}
//	ZADD {prefix}:reg:{reg}  {unixMillis} {id}
//
// Deletes run inside MULTI/EXEC so a batch is applied all at once.
type ResultStore struct {
	client *redis.Client
	prefix string
}

func NewResultStore(client *redis.Client, prefix string) *ResultStore {
	if prefix == "" {
		prefix = "results"
	}
	return &ResultStore{client: client, prefix: prefix}
}

func (s *ResultStore) SaveResult(ctx context.Context, result domain.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	score := float64(result.Timestamp.UnixMilli())

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.docKey(result.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: score, Member: result.ID})
		pipe.ZAdd(ctx, s.regKey(result.RegNumber), redis.Z{Score: score, Member: result.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save result %s: %w", result.ID, err)
	}
	return nil
}

func (s *ResultStore) FindResult(ctx context.Context, regNumber string) (domain.Result, bool, error) {
	ids, err := s.client.ZRevRange(ctx, s.regKey(regNumber), 0, 0).Result()
	if err != nil {
		return domain.Result{}, false, fmt.Errorf("find result: %w", err)
	}
	if len(ids) == 0 {
		return domain.Result{}, false, nil
	}
	results, err := s.load(ctx, ids)
	if err != nil || len(results) == 0 {
		return domain.Result{}, false, err
	}
	return results[0], true, nil
}

func (s *ResultStore) ListResults(ctx context.Context) ([]domain.Result, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	results, err := s.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	domain.SortNewestFirst(results)
	return results, nil
}

func (s *ResultStore) DeleteResults(ctx context.Context, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range results {
			pipe.Del(ctx, s.docKey(r.ID))
			pipe.ZRem(ctx, s.indexKey(), r.ID)
			pipe.ZRem(ctx, s.regKey(r.RegNumber), r.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete results: %w", err)
	}
	return nil
}

func (s *ResultStore) load(ctx context.Context, ids []string) ([]domain.Result, error) {
	if len(ids) == 0 {
		return []domain.Result{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	results := make([]domain.Result, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry without document
			continue
		}
		var r domain.Result
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode result %s: %w", ids[i], err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *ResultStore) docKey(id string) string {
	return s.prefix + ":doc:" + id
}

func (s *ResultStore) indexKey() string {
	return s.prefix + ":index"
}

func (s *ResultStore) regKey(reg string) string {
	return s.prefix + ":reg:" + reg
}

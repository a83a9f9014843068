package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"quiz-admin-service/internal/domain"
)

const resultColumns = `id, reg_number, full_name, score, total, department, year, created_at`

// ResultStore keeps results in the results table created by the migrations package.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) SaveResult(ctx context.Context, r domain.Result) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO results (`+resultColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.RegNumber, r.FullName, r.Score, r.Total, r.Department, r.Year, r.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *ResultStore) FindResult(ctx context.Context, regNumber string) (domain.Result, bool, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE reg_number = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		regNumber,
	)
	r, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Result{}, false, nil
	}
	if err != nil {
		return domain.Result{}, false, fmt.Errorf("find result: %w", err)
	}
	return r, true, nil
}

func (s *ResultStore) ListResults(ctx context.Context) ([]domain.Result, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+resultColumns+` FROM results ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	results := []domain.Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteResults removes the given rows in a single statement, which Postgres applies atomically.
func (s *ResultStore) DeleteResults(ctx context.Context, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM results WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete results: %w", err)
	}
	return nil
}

func scanResult(row pgx.Row) (domain.Result, error) {
	var r domain.Result
	err := row.Scan(&r.ID, &r.RegNumber, &r.FullName, &r.Score, &r.Total, &r.Department, &r.Year, &r.Timestamp)
	return r, err
}

// Package sqlite stores quiz results in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"quiz-admin-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id          TEXT PRIMARY KEY,
	reg_number  TEXT NOT NULL,
	full_name   TEXT NOT NULL,
	score       REAL NOT NULL,
	total       REAL NOT NULL,
	department  TEXT NOT NULL,
	year        TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS results_reg_number_idx ON results (reg_number);
`

type resultRow struct {
	ID         string    `db:"id"`
	RegNumber  string    `db:"reg_number"`
	FullName   string    `db:"full_name"`
	Score      float64   `db:"score"`
	Total      float64   `db:"total"`
	Department string    `db:"department"`
	Year       string    `db:"year"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r resultRow) toDomain() domain.Result {
	return domain.Result{
		ID:         r.ID,
		RegNumber:  r.RegNumber,
		FullName:   r.FullName,
		Score:      r.Score,
		Total:      r.Total,
		Department: r.Department,
		Year:       r.Year,
		Timestamp:  r.CreatedAt,
	}
}

// ResultStore is a SQLite implementation of app.ResultStore.
type ResultStore struct {
	db *sqlx.DB
}

// Open connects to the database file at path, creating it and its schema when missing.
func Open(path string) (*ResultStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create results table: %w", err)
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

func (s *ResultStore) SaveResult(ctx context.Context, r domain.Result) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO results (id, reg_number, full_name, score, total, department, year, created_at)
		VALUES (:id, :reg_number, :full_name, :score, :total, :department, :year, :created_at)`,
		resultRow{
			ID:         r.ID,
			RegNumber:  r.RegNumber,
			FullName:   r.FullName,
			Score:      r.Score,
			Total:      r.Total,
			Department: r.Department,
			Year:       r.Year,
			CreatedAt:  r.Timestamp.UTC(),
		})
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

func (s *ResultStore) FindResult(ctx context.Context, regNumber string) (domain.Result, bool, error) {
	var row resultRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM results WHERE reg_number = ? ORDER BY created_at DESC, id DESC LIMIT 1`, regNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Result{}, false, nil
	}
	if err != nil {
		return domain.Result{}, false, fmt.Errorf("failed to get result: %w", err)
	}
	return row.toDomain(), true, nil
}

func (s *ResultStore) ListResults(ctx context.Context) ([]domain.Result, error) {
	var rows []resultRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM results ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	results := make([]domain.Result, len(rows))
	for i, row := range rows {
		results[i] = row.toDomain()
	}
	return results, nil
}

// DeleteResults removes the given rows inside one transaction.
func (s *ResultStore) DeleteResults(ctx context.Context, results []domain.Result) error {
	if len(results) == 0 {
		return nil
	}
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}

	query, args, err := sqlx.In(`DELETE FROM results WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete results: %w", err)
	}
	return tx.Commit()
}

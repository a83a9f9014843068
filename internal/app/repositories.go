package app

import (
	"context"

	"quiz-admin-service/internal/domain"
)

// RosterRepository loads the list of valid registration numbers.
type RosterRepository interface {
	Roster(ctx context.Context) ([]string, error)
}

// QuestionRepository reads and rewrites the question collection as a whole.
// UpdateQuestions runs fn under the repository's write lock; returning an error
// from fn leaves the collection untouched.
type QuestionRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
	UpdateQuestions(ctx context.Context, fn func([]domain.Question) ([]domain.Question, error)) error
}

// SettingsRepository holds the singleton quiz settings.
type SettingsRepository interface {
	Settings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// ResultStore persists quiz results (SQLite, Postgres, Redis, Firestore, memory).
type ResultStore interface {
	SaveResult(ctx context.Context, result domain.Result) error
	// FindResult returns the most recent result stored under the canonical registration number.
	FindResult(ctx context.Context, regNumber string) (domain.Result, bool, error)
	// ListResults returns every result, newest first.
	ListResults(ctx context.Context) ([]domain.Result, error)
	// DeleteResults removes exactly the given results in one atomic operation.
	DeleteResults(ctx context.Context, results []domain.Result) error
}

// Archiver durably stores an export before the exported results are deleted.
type Archiver interface {
	Archive(ctx context.Context, file domain.ExportFile) (string, error)
}

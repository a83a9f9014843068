package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quiz-admin-service/internal/domain"
)

const (
	StudentsFile  = "students.json"
	QuestionsFile = "questions.json"
	SettingsFile  = "settings.json"
)

// Store serves the roster, questions and settings from a data directory.
type Store struct {
	students  *JSONFile[[]string]
	questions *JSONFile[[]domain.Question]
	settings  *JSONFile[domain.Settings]
}

// Open creates dir if needed and seeds any missing file with its default content.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{
		students:  NewJSONFile[[]string](filepath.Join(dir, StudentsFile)),
		questions: NewJSONFile[[]domain.Question](filepath.Join(dir, QuestionsFile)),
		settings:  NewJSONFile[domain.Settings](filepath.Join(dir, SettingsFile)),
	}
	if err := s.students.EnsureDefault([]string{}); err != nil {
		return nil, err
	}
	if err := s.questions.EnsureDefault([]domain.Question{}); err != nil {
		return nil, err
	}
	if err := s.settings.EnsureDefault(domain.DefaultSettings()); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadRoster reads students.json. It satisfies the roster caches' loader interface.
func (s *Store) LoadRoster(_ context.Context) ([]string, error) {
	return s.students.Load()
}

// Roster reads students.json on every call.
func (s *Store) Roster(ctx context.Context) ([]string, error) {
	return s.LoadRoster(ctx)
}

// MergeRoster appends registration numbers not yet on the roster and reports how many were added.
func (s *Store) MergeRoster(_ context.Context, regNumbers []string) (int, error) {
	added := 0
	err := s.students.Update(func(roster []string) ([]string, error) {
		seen := make(map[string]struct{}, len(roster))
		for _, reg := range roster {
			seen[reg] = struct{}{}
		}
		for _, reg := range regNumbers {
			reg = strings.TrimSpace(reg)
			if reg == "" {
				continue
			}
			if _, ok := seen[reg]; ok {
				continue
			}
			seen[reg] = struct{}{}
			roster = append(roster, reg)
			added++
		}
		return roster, nil
	})
	return added, err
}

func (s *Store) Questions(_ context.Context) ([]domain.Question, error) {
	return s.questions.Load()
}

func (s *Store) UpdateQuestions(_ context.Context, fn func([]domain.Question) ([]domain.Question, error)) error {
	return s.questions.Update(fn)
}

func (s *Store) Settings(_ context.Context) (domain.Settings, error) {
	return s.settings.Load()
}

func (s *Store) SaveSettings(_ context.Context, settings domain.Settings) error {
	return s.settings.Store(settings)
}

package app

import (
	"context"
	"time"

	"quiz-admin-service/internal/domain"
)

// SettingsInput carries an update request; zero means absent, empty or non-numeric.
type SettingsInput struct {
	Timer           int
	QuestionsToShow int
}

type SettingsService struct {
	repo SettingsRepository
	now  func() time.Time
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return NewSettingsServiceWithClock(repo, time.Now)
}

func NewSettingsServiceWithClock(repo SettingsRepository, now func() time.Time) *SettingsService {
	return &SettingsService{repo: repo, now: now}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Settings(ctx)
}

// Update replaces the settings record. Both values must be non-zero, so a
// timer of 0 is rejected along with missing fields.
func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (domain.Settings, error) {
	if in.Timer == 0 || in.QuestionsToShow == 0 {
		return domain.Settings{}, domain.ErrMissingSettings
	}
	now := s.now()
	settings := domain.Settings{
		Timer:           in.Timer,
		QuestionsToShow: in.QuestionsToShow,
		UpdatedAt:       &now,
	}
	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

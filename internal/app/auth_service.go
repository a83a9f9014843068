package app

import (
	"context"
	"fmt"
	"strings"

	"quiz-admin-service/internal/domain"
)

// AuthService checks student logins against the roster.
type AuthService struct {
	roster  RosterRepository
	results ResultStore
}

func NewAuthService(roster RosterRepository, results ResultStore) *AuthService {
	return &AuthService{roster: roster, results: results}
}

// Login accepts a registration number when any roster matching rule applies and
// reports which rule it was.
func (s *AuthService) Login(ctx context.Context, regNumber string) (domain.MatchStrategy, error) {
	if strings.TrimSpace(regNumber) == "" {
		return domain.MatchNone, domain.ErrRegNumberRequired
	}

	roster, err := s.roster.Roster(ctx)
	if err != nil {
		return domain.MatchNone, fmt.Errorf("load roster: %w", err)
	}

	strategy := domain.MatchRoster(regNumber, roster)
	if strategy == domain.MatchNone {
		return domain.MatchNone, domain.ErrInvalidRegNumber
	}
	return strategy, nil
}

// FindResult reports whether the student already has a stored result.
func (s *AuthService) FindResult(ctx context.Context, regNumber string) (domain.Result, bool, error) {
	result, ok, err := s.results.FindResult(ctx, domain.CanonicalRegNumber(regNumber))
	if err != nil {
		return domain.Result{}, false, fmt.Errorf("find result: %w", err)
	}
	return result, ok, nil
}

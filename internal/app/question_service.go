package app

import (
	"context"
	"strconv"
	"time"

	"quiz-admin-service/internal/domain"
)

// QuestionService implements question CRUD over a whole-collection repository.
type QuestionService struct {
	repo QuestionRepository
	now  func() time.Time
}

func NewQuestionService(repo QuestionRepository) *QuestionService {
	return NewQuestionServiceWithClock(repo, time.Now)
}

// NewQuestionServiceWithClock is used by tests for deterministic IDs and timestamps.
func NewQuestionServiceWithClock(repo QuestionRepository, now func() time.Time) *QuestionService {
	return &QuestionService{repo: repo, now: now}
}

func (s *QuestionService) List(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.repo.Questions(ctx)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (domain.Question, error) {
	questions, err := s.repo.Questions(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	for _, q := range questions {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

// Create appends a question with a millisecond timestamp ID.
func (s *QuestionService) Create(ctx context.Context, in domain.QuestionInput) (domain.Question, error) {
	if err := validateQuestion(in); err != nil {
		return domain.Question{}, err
	}

	var created domain.Question
	err := s.repo.UpdateQuestions(ctx, func(questions []domain.Question) ([]domain.Question, error) {
		now := s.now()
		created = domain.Question{
			ID:            nextQuestionID(questions, now),
			Question:      in.Question,
			Options:       in.Options,
			CorrectAnswer: in.CorrectAnswer,
			CreatedAt:     now,
		}
		return append(questions, created), nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return created, nil
}

// Update replaces the content fields of an existing question, keeping its ID and createdAt.
func (s *QuestionService) Update(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error) {
	if err := validateQuestion(in); err != nil {
		return domain.Question{}, err
	}

	var updated domain.Question
	err := s.repo.UpdateQuestions(ctx, func(questions []domain.Question) ([]domain.Question, error) {
		for i := range questions {
			if questions[i].ID != id {
				continue
			}
			now := s.now()
			questions[i].Question = in.Question
			questions[i].Options = in.Options
			questions[i].CorrectAnswer = in.CorrectAnswer
			questions[i].UpdatedAt = &now
			updated = questions[i]
			return questions, nil
		}
		return nil, domain.ErrQuestionNotFound
	})
	if err != nil {
		return domain.Question{}, err
	}
	return updated, nil
}

// Delete removes every question with the given ID.
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	return s.repo.UpdateQuestions(ctx, func(questions []domain.Question) ([]domain.Question, error) {
		kept := make([]domain.Question, 0, len(questions))
		for _, q := range questions {
			if q.ID != id {
				kept = append(kept, q)
			}
		}
		if len(kept) == len(questions) {
			return nil, domain.ErrQuestionNotFound
		}
		return kept, nil
	})
}

// validateQuestion only checks presence: 0 and unparseable answers are accepted,
// and the answer index is not checked against the options.
func validateQuestion(in domain.QuestionInput) error {
	if in.Question == "" || in.Options == nil || !in.HasAnswer {
		return domain.ErrMissingQuestionFields
	}
	return nil
}

func nextQuestionID(questions []domain.Question, now time.Time) string {
	taken := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		taken[q.ID] = struct{}{}
	}
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, ok := taken[id]; !ok {
			return id
		}
		ms++
	}
}

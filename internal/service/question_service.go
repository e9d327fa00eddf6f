package service

import (
	"toeic_prep_backend/internal/model"
	"toeic_prep_backend/internal/repository"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

// ListTestQuestions returns the sanitized question set for a test. The
// correct answer never crosses this boundary; only the grader reads it.
func (s *QuestionService) ListTestQuestions(testID string) ([]model.StudentQuestion, error) {
	questions, err := s.Repo.ListByTest(testID)
	if err != nil {
		return nil, err
	}

	views := make([]model.StudentQuestion, 0, len(questions))
	for i := range questions {
		views = append(views, questions[i].StudentView())
	}
	return views, nil
}

package repository

import (
	"context"

	"toeic_prep_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionRepository reads the question catalog. The catalog is read-only
// from this service's perspective; content management lives elsewhere.
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// FetchItemsMap loads questions in bulk by id. Duplicate ids collapse into
// one map entry; ids with no matching question are simply absent from the
// result rather than an error.
func (r *QuestionRepository) FetchItemsMap(ctx context.Context, ids []string) (map[string]model.Question, error) {
	result := make(map[string]model.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var questions []model.Question
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	if err != nil {
		return nil, err
	}

	for _, q := range questions {
		result[q.ID] = q
	}
	return result, nil
}

func (r *QuestionRepository) ListByTest(testID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Where("test_id = ? AND published = ?", testID, true).
		Order("`order` ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

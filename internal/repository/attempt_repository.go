package repository

import (
	"errors"

	"toeic_prep_backend/internal/model"
	"toeic_prep_backend/internal/util"

	"gorm.io/gorm"
)

// AttemptRepository is the write-once attempt trail. Attempts are created
// with their answers in one transaction and never updated or deleted.
type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create persists the attempt row and its answer rows atomically. Readers
// never see an attempt without its answers.
func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		answers := attempt.Answers
		attempt.Answers = nil
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		attempt.Answers = answers
		return nil
	})
}

func (r *AttemptRepository) FindByID(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&attempt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindLatestByUser(userID uint) (*model.Attempt, error) {
	return r.findLatest(r.DB.Where("user_id = ?", userID))
}

func (r *AttemptRepository) FindLatestByUserAndSection(userID uint, sectionKey string) (*model.Attempt, error) {
	return r.findLatest(r.DB.Where("user_id = ? AND section_key = ?", userID, sectionKey))
}

func (r *AttemptRepository) findLatest(q *gorm.DB) (*model.Attempt, error) {
	var attempt model.Attempt
	err := q.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		Order("finished_at DESC").
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByUser(userID uint, page, limit int) ([]model.Attempt, int64, error) {
	var attempts []model.Attempt
	var total int64

	q := r.DB.Model(&model.Attempt{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	err := q.
		Order("finished_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}

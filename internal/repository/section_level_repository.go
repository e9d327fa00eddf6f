package repository

import (
	"errors"

	"toeic_prep_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SectionLevelRepository struct {
	DB *gorm.DB
}

func NewSectionLevelRepository(db *gorm.DB) *SectionLevelRepository {
	return &SectionLevelRepository{DB: db}
}

// GetLevel returns (level, found). A learner with no record for the section
// has no level on file yet; callers default to the minimum.
func (r *SectionLevelRepository) GetLevel(userID uint, sectionKey string) (int, bool, error) {
	var rec model.UserSectionLevel
	err := r.DB.Where("user_id = ? AND section_key = ?", userID, sectionKey).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rec.Level, true, nil
}

func (r *SectionLevelRepository) SetLevel(userID uint, sectionKey string, level int) error {
	rec := model.UserSectionLevel{
		UserID:     userID,
		SectionKey: sectionKey,
		Level:      level,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "section_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "updated_at"}),
	}).Create(&rec).Error
}

func (r *SectionLevelRepository) ListByUser(userID uint) ([]model.UserSectionLevel, error) {
	var levels []model.UserSectionLevel
	err := r.DB.Where("user_id = ?", userID).Order("section_key ASC").Find(&levels).Error
	return levels, err
}

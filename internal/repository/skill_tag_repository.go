package repository

import (
	"toeic_prep_backend/internal/model"

	"gorm.io/gorm"
)

type SkillTagRepository struct {
	DB *gorm.DB
}

func NewSkillTagRepository(db *gorm.DB) *SkillTagRepository {
	return &SkillTagRepository{DB: db}
}

func (r *SkillTagRepository) FindAll() ([]model.SkillTag, error) {
	var tags []model.SkillTag
	err := r.DB.Order("`order` ASC, code ASC").Find(&tags).Error
	return tags, err
}

func (r *SkillTagRepository) FindEnabled() ([]model.SkillTag, error) {
	var tags []model.SkillTag
	err := r.DB.Where("enabled = ?", true).Order("`order` ASC, code ASC").Find(&tags).Error
	return tags, err
}

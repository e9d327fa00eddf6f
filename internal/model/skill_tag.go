package model

// SkillTag maps a raw skill code attached to questions to a display label.
type SkillTag struct {
	BaseModel
	Code        string `gorm:"size:100;uniqueIndex" json:"code"`
	Label       string `gorm:"size:255;not null" json:"label"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"default:0" json:"order"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (SkillTag) TableName() string {
	return "skill_tags"
}

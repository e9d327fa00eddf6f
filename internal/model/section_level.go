package model

// UserSectionLevel tracks the proficiency tier a learner practices at for one
// exam section. Recommendations are advisory; this row only changes when the
// learner applies one (or keeps their current level explicitly).
type UserSectionLevel struct {
	BaseModel
	UserID     uint   `gorm:"uniqueIndex:idx_user_section;type:bigint unsigned" json:"userId"`
	SectionKey string `gorm:"uniqueIndex:idx_user_section;size:16" json:"sectionKey"`
	Level      int    `gorm:"default:1" json:"level"`
}

func (UserSectionLevel) TableName() string {
	return "user_section_levels"
}

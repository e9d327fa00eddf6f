package model

import "time"

// Attempt is one completed, scored submission. Write-once: attempts are never
// updated or deleted so historical accuracy trends stay reproducible.
// swagger:model Attempt
type Attempt struct {
	UUIDBase

	UserID     uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	TestID     string          `gorm:"index;size:64" json:"testId"`
	TestType   string          `gorm:"size:32;default:'practice'" json:"testType"` // practice, placement, progress
	SectionKey string          `gorm:"index;size:16" json:"sectionKey"`
	Level      int             `gorm:"default:1" json:"level"`
	Total      int             `json:"total"`
	Correct    int             `json:"correct"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `gorm:"index" json:"finishedAt"`
	Answers    []AttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// AttemptAnswer is one graded answer within an attempt. Seq preserves the
// submission order, including duplicate item ids.
type AttemptAnswer struct {
	BaseModel
	AttemptID  string     `gorm:"index;size:36" json:"attemptId"`
	Seq        int        `json:"seq"`
	ItemID     string     `gorm:"size:64" json:"itemId"`
	Choice     string     `gorm:"size:1" json:"choice"`
	Correct    bool       `json:"correct"`
	TimeSec    int        `json:"timeSec"`
	GradedAt   time.Time  `json:"gradedAt"`
	Part       string     `gorm:"size:16" json:"part,omitempty"`
	Tags       StringList `gorm:"type:json" json:"tags"`
	Unresolved bool       `gorm:"default:false" json:"unresolved"` // item id missing from the answer key
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}

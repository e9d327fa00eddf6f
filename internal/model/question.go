package model

import (
	"database/sql/driver"
	"encoding/json"
)

// Part codes for the seven TOEIC sections. Listening: parts 1-4, Reading: parts 5-7.
const (
	Part1 = "part.1"
	Part2 = "part.2"
	Part3 = "part.3"
	Part4 = "part.4"
	Part5 = "part.5"
	Part6 = "part.6"
	Part7 = "part.7"
)

// StringList is stored as a JSON array column.
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	}
	return json.Unmarshal(raw, l)
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// swagger:model Question
type Question struct {
	ID        string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TestID    string     `gorm:"index;size:64" json:"testId"`
	Part      string     `gorm:"size:16;index" json:"part"`
	Stem      string     `gorm:"type:text" json:"stem"`
	Choices   StringList `gorm:"type:json" json:"choices"`
	Answer    string     `gorm:"size:1" json:"-"` // correct choice A-D, never serialized to clients
	Tags      StringList `gorm:"type:json" json:"tags"`
	AudioURL  string     `gorm:"size:255" json:"audioUrl,omitempty"`
	Order     int        `gorm:"default:0" json:"order"`
	Published bool       `gorm:"default:true" json:"published"`
}

func (Question) TableName() string {
	return "questions"
}

// StudentQuestion is the sanitized view served to learners. The answer key
// stays inside the grading boundary.
type StudentQuestion struct {
	ID       string     `json:"id"`
	Part     string     `json:"part"`
	Stem     string     `json:"stem"`
	Choices  StringList `json:"choices"`
	AudioURL string     `json:"audioUrl,omitempty"`
	Order    int        `json:"order"`
}

func (q *Question) StudentView() StudentQuestion {
	return StudentQuestion{
		ID:       q.ID,
		Part:     q.Part,
		Stem:     q.Stem,
		Choices:  q.Choices,
		AudioURL: q.AudioURL,
		Order:    q.Order,
	}
}

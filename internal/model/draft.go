package model

import "time"

// Draft holds a learner's in-progress answers for one test. Drafts live in
// Redis keyed by (user, testType, testKey) and expire seven days after the
// last save; they are not part of the write-once attempt trail.
type Draft struct {
	UserID    uint              `json:"userId"`
	TestType  string            `json:"testType"`
	TestKey   string            `json:"testKey"`
	Answers   map[string]string `json:"answers"` // item id -> choice
	AllIDs    []string          `json:"allIds"`  // full question id set, so partial saves can be reconstructed
	TimeSec   int               `json:"timeSec"`
	StartedAt time.Time         `json:"startedAt"`
	SavedAt   time.Time         `json:"savedAt"`
}

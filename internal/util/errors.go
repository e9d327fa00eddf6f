package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAttemptNotFound    = errors.New("attempt not found")
	ErrNoAttemptsYet      = errors.New("no attempts yet")
	ErrEmptySubmission    = errors.New("submission must contain at least one answer")
	ErrMissingUserID      = errors.New("userId is required")
	ErrMissingTestID      = errors.New("testId is required")
	ErrAnswerKeyUnavail   = errors.New("answer key store unavailable")
	ErrInvalidChoice      = errors.New("choice must be one of A, B, C, D")
	ErrLevelOutOfRange    = errors.New("level out of configured range")
	ErrSectionKeyRequired = errors.New("sectionKey is required")
)

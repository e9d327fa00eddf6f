package service

import (
	"context"
	"errors"
	"time"

	"toeic_prep_backend/internal/model"
	"toeic_prep_backend/internal/repository"
)

type DraftSaveRequest struct {
	TestType  string            `json:"testType" binding:"required"`
	TestKey   string            `json:"testKey" binding:"required"`
	Answers   map[string]string `json:"answers"`
	AllIDs    []string          `json:"allIds"`
	TimeSec   int               `json:"timeSec" binding:"gte=0"`
	StartedAt time.Time         `json:"startedAt"`
}

type DraftService struct {
	Drafts *repository.DraftRepository
}

func NewDraftService(drafts *repository.DraftRepository) *DraftService {
	return &DraftService{Drafts: drafts}
}

func (s *DraftService) Save(ctx context.Context, userID uint, req DraftSaveRequest) (*model.Draft, error) {
	if req.TestType == "" || req.TestKey == "" {
		return nil, errors.New("testType and testKey are required")
	}

	draft := &model.Draft{
		UserID:    userID,
		TestType:  req.TestType,
		TestKey:   req.TestKey,
		Answers:   req.Answers,
		AllIDs:    req.AllIDs,
		TimeSec:   req.TimeSec,
		StartedAt: req.StartedAt,
	}
	if draft.Answers == nil {
		draft.Answers = map[string]string{}
	}

	if err := s.Drafts.Upsert(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get returns nil for both a missing and an expired draft; lapsing is silent.
func (s *DraftService) Get(ctx context.Context, userID uint, testType, testKey string) (*model.Draft, error) {
	return s.Drafts.Get(ctx, userID, testType, testKey)
}

func (s *DraftService) Discard(ctx context.Context, userID uint, testType, testKey string) error {
	return s.Drafts.Delete(ctx, userID, testType, testKey)
}

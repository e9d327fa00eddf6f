package service

import (
	"context"
	"fmt"
	"time"

	"toeic_prep_backend/internal/model"
	"toeic_prep_backend/internal/util"
	"toeic_prep_backend/pkg/logger"
	"toeic_prep_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	TestTypePractice  = "practice"
	TestTypePlacement = "placement"
	TestTypeProgress  = "progress"
)

// Store contracts the pipeline depends on. The concrete repositories satisfy
// them; tests can substitute in-memory fakes without a live database.
type AnswerKeyLookup interface {
	FetchItemsMap(ctx context.Context, ids []string) (map[string]model.Question, error)
}

type AttemptStore interface {
	Create(attempt *model.Attempt) error
	FindByID(id string) (*model.Attempt, error)
	FindLatestByUser(userID uint) (*model.Attempt, error)
	FindLatestByUserAndSection(userID uint, sectionKey string) (*model.Attempt, error)
	ListByUser(userID uint, page, limit int) ([]model.Attempt, int64, error)
}

type DraftStore interface {
	Delete(ctx context.Context, userID uint, testType, testKey string) error
}

type LevelReader interface {
	GetLevel(userID uint, sectionKey string) (int, bool, error)
}

type SubmitRequest struct {
	TestID     string        `json:"testId" binding:"required"`
	TestType   string        `json:"testType" binding:"omitempty,oneof=practice placement progress"`
	SectionKey string        `json:"sectionKey"`
	StartedAt  *time.Time    `json:"startedAt"`
	Answers    []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

type Score struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type SubmitResult struct {
	AttemptID      string               `json:"attemptId"`
	Score          Score                `json:"score"`
	ByPart         []PartBreakdown      `json:"byPart"`
	ByTag          []TagBreakdown       `json:"byTag"`
	Recommendation *LevelRecommendation `json:"recommendation,omitempty"`
}

// AttemptService runs the submission pipeline: answer-key lookup, grading,
// breakdowns, level recommendation, attempt persistence, draft cleanup.
type AttemptService struct {
	Key         AnswerKeyLookup
	Attempts    AttemptStore
	Drafts      DraftStore
	Levels      LevelReader
	Recommender *LevelRecommender
	Labeler     TagLabeler

	lookupTimeout time.Duration
	retryBackoff  time.Duration
}

func NewAttemptService(
	key AnswerKeyLookup,
	attempts AttemptStore,
	drafts DraftStore,
	levels LevelReader,
	recommender *LevelRecommender,
	labeler TagLabeler,
) *AttemptService {
	return &AttemptService{
		Key:           key,
		Attempts:      attempts,
		Drafts:        drafts,
		Levels:        levels,
		Recommender:   recommender,
		Labeler:       labeler,
		lookupTimeout: 3 * time.Second,
		retryBackoff:  200 * time.Millisecond,
	}
}

type levelLookup struct {
	level int
	found bool
	err   error
}

// Submit grades one submission end to end. The draft for (testType, testId)
// is deleted only after the attempt is persisted: a crash between the two
// leaves a stale draft behind, which is re-offered harmlessly, never a lost
// attempt.
func (s *AttemptService) Submit(ctx context.Context, userID uint, req SubmitRequest) (*SubmitResult, error) {
	if userID == 0 {
		return nil, util.ErrMissingUserID
	}
	if req.TestID == "" {
		return nil, util.ErrMissingTestID
	}
	if len(req.Answers) == 0 {
		return nil, util.ErrEmptySubmission
	}
	testType := req.TestType
	if testType == "" {
		testType = TestTypePractice
	}

	// The current level is an independent read; when the caller names the
	// section up front it runs concurrently with the answer-key fetch.
	var levelCh chan levelLookup
	if req.SectionKey != "" {
		levelCh = make(chan levelLookup, 1)
		go func(section string) {
			level, found, err := s.Levels.GetLevel(userID, section)
			levelCh <- levelLookup{level: level, found: found, err: err}
		}(req.SectionKey)
	}

	ids := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		ids = append(ids, a.ItemID)
	}

	key, err := s.fetchKey(ctx, ids)
	if err != nil {
		return nil, err
	}

	grade := GradeAnswers(req.Answers, key)
	byPart := BreakdownByPart(grade.Detailed)
	byTag := AttachTagLabels(BreakdownByTag(grade.Detailed), s.Labeler)

	sectionKey := req.SectionKey
	if sectionKey == "" {
		sectionKey = dominantPart(byPart)
	}

	var lvl levelLookup
	if levelCh != nil {
		lvl = <-levelCh
	} else if sectionKey != "" {
		lvl.level, lvl.found, lvl.err = s.Levels.GetLevel(userID, sectionKey)
	}
	if lvl.err != nil {
		return nil, lvl.err
	}

	var rec *LevelRecommendation
	if testType != TestTypePlacement && sectionKey != "" {
		r := s.Recommender.Recommend(lvl.level, lvl.found, grade.Total, grade.Correct)
		rec = &r
	}

	attemptLevel := lvl.level
	if !lvl.found {
		attemptLevel = s.Recommender.cfg.Min
	}

	now := time.Now()
	startedAt := now
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}

	attempt := &model.Attempt{
		UserID:     userID,
		TestID:     req.TestID,
		TestType:   testType,
		SectionKey: sectionKey,
		Level:      attemptLevel,
		Total:      grade.Total,
		Correct:    grade.Correct,
		StartedAt:  startedAt,
		FinishedAt: now,
	}
	attempt.ID = model.GenerateUUID()

	unresolved := 0
	attempt.Answers = make([]model.AttemptAnswer, 0, len(grade.Detailed))
	for i, g := range grade.Detailed {
		if g.Unresolved {
			unresolved++
		}
		attempt.Answers = append(attempt.Answers, model.AttemptAnswer{
			Seq:        i,
			ItemID:     g.ItemID,
			Choice:     g.Choice,
			Correct:    g.Correct,
			TimeSec:    g.TimeSec,
			GradedAt:   g.At,
			Part:       g.Part,
			Tags:       g.Tags,
			Unresolved: g.Unresolved,
		})
	}

	// Persistence failure must surface so the client can resubmit, and the
	// draft must survive it.
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}

	if err := s.Drafts.Delete(ctx, userID, testType, req.TestID); err != nil {
		logger.Log.Warn("failed to clear draft after attempt",
			zap.String("attemptId", attempt.ID), zap.Error(err))
	}

	monitoring.AttemptsGraded.WithLabelValues(testType).Inc()
	if unresolved > 0 {
		monitoring.UnresolvedItems.Add(float64(unresolved))
		logger.Log.Warn("submission contained unresolved item ids",
			zap.String("attemptId", attempt.ID), zap.Int("unresolved", unresolved))
	}

	return &SubmitResult{
		AttemptID:      attempt.ID,
		Score:          Score{Total: grade.Total, Correct: grade.Correct, Accuracy: accuracy(grade.Correct, grade.Total)},
		ByPart:         byPart,
		ByTag:          byTag,
		Recommendation: rec,
	}, nil
}

// fetchKey bounds the answer-key lookup and retries once with backoff before
// giving up. A lookup failure is an upstream problem, never a grading result.
func (s *AttemptService) fetchKey(ctx context.Context, ids []string) (map[string]model.Question, error) {
	fetch := func() (map[string]model.Question, error) {
		cctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
		return s.Key.FetchItemsMap(cctx, ids)
	}

	key, err := fetch()
	if err == nil {
		return key, nil
	}

	logger.Log.Warn("answer key fetch failed, retrying", zap.Error(err))
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", util.ErrAnswerKeyUnavail, ctx.Err())
	case <-time.After(s.retryBackoff):
	}

	key, err = fetch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrAnswerKeyUnavail, err)
	}
	return key, nil
}

// dominantPart picks the section with the most graded answers; byPart is
// sorted by part code, so ties resolve to the lowest code.
func dominantPart(byPart []PartBreakdown) string {
	best := ""
	bestAttempts := 0
	for _, p := range byPart {
		if p.Attempts > bestAttempts {
			best = p.Part
			bestAttempts = p.Attempts
		}
	}
	return best
}

type AttemptSummary struct {
	AttemptID  string          `json:"attemptId"`
	UserID     uint            `json:"userId"`
	TestID     string          `json:"testId"`
	TestType   string          `json:"testType"`
	SectionKey string          `json:"sectionKey"`
	Level      int             `json:"level"`
	Score      Score           `json:"score"`
	ByPart     []PartBreakdown `json:"byPart"`
	ByTag      []TagBreakdown  `json:"byTag"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
}

func (s *AttemptService) GetAttempt(id string) (*AttemptSummary, error) {
	attempt, err := s.Attempts.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.summarize(attempt), nil
}

// GetLatest returns the most recent attempt for the learner, optionally
// restricted to one section. No attempts on record is a normal state, not an
// error condition for the client.
func (s *AttemptService) GetLatest(userID uint, sectionKey string) (*AttemptSummary, error) {
	var attempt *model.Attempt
	var err error
	if sectionKey != "" {
		attempt, err = s.Attempts.FindLatestByUserAndSection(userID, sectionKey)
	} else {
		attempt, err = s.Attempts.FindLatestByUser(userID)
	}
	if err == util.ErrAttemptNotFound {
		return nil, util.ErrNoAttemptsYet
	}
	if err != nil {
		return nil, err
	}
	return s.summarize(attempt), nil
}

func (s *AttemptService) ListHistory(userID uint, page, limit int) ([]AttemptSummary, int64, error) {
	attempts, total, err := s.Attempts.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	summaries := make([]AttemptSummary, 0, len(attempts))
	for i := range attempts {
		summaries = append(summaries, *s.summarize(&attempts[i]))
	}
	return summaries, total, nil
}

// summarize rebuilds score and breakdowns from the stored grading detail, so
// historical responses match what the submission returned.
func (s *AttemptService) summarize(attempt *model.Attempt) *AttemptSummary {
	detailed := make([]GradedAnswer, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		detailed = append(detailed, GradedAnswer{
			ItemID:     a.ItemID,
			Choice:     a.Choice,
			Correct:    a.Correct,
			TimeSec:    a.TimeSec,
			At:         a.GradedAt,
			Part:       a.Part,
			Tags:       a.Tags,
			Unresolved: a.Unresolved,
		})
	}

	return &AttemptSummary{
		AttemptID:  attempt.ID,
		UserID:     attempt.UserID,
		TestID:     attempt.TestID,
		TestType:   attempt.TestType,
		SectionKey: attempt.SectionKey,
		Level:      attempt.Level,
		Score:      Score{Total: attempt.Total, Correct: attempt.Correct, Accuracy: accuracy(attempt.Correct, attempt.Total)},
		ByPart:     BreakdownByPart(detailed),
		ByTag:      AttachTagLabels(BreakdownByTag(detailed), s.Labeler),
		StartedAt:  attempt.StartedAt,
		FinishedAt: attempt.FinishedAt,
	}
}

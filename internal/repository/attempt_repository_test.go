package repository

import (
	"testing"
	"time"

	"toeic_prep_backend/internal/model"
	"toeic_prep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Question{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.UserSectionLevel{},
		&model.SkillTag{},
	))
	return db
}

func testAttempt(userID uint, testID, sectionKey string, finishedAt time.Time) *model.Attempt {
	return &model.Attempt{
		UserID:     userID,
		TestID:     testID,
		TestType:   "practice",
		SectionKey: sectionKey,
		Level:      1,
		Total:      2,
		Correct:    1,
		StartedAt:  finishedAt.Add(-10 * time.Minute),
		FinishedAt: finishedAt,
		Answers: []model.AttemptAnswer{
			{Seq: 0, ItemID: "q1", Choice: "A", Correct: true, Part: model.Part5, Tags: model.StringList{"grammar"}},
			{Seq: 1, ItemID: "q2", Choice: "B", Correct: false, Part: model.Part5, Tags: model.StringList{"grammar"}},
		},
	}
}

func TestAttemptRepository_CreateAndFindByID(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	attempt := testAttempt(7, "test-42", model.Part5, time.Now())
	require.NoError(t, repo.Create(attempt))
	require.NotEmpty(t, attempt.ID)

	got, err := repo.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "test-42", got.TestID)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, attempt.ID, got.Answers[0].AttemptID)
	assert.Equal(t, "q1", got.Answers[0].ItemID)
	assert.Equal(t, model.StringList{"grammar"}, got.Answers[0].Tags)
	assert.Equal(t, "q2", got.Answers[1].ItemID)
}

func TestAttemptRepository_FindByID_NotFound(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	_, err := repo.FindByID("no-such-attempt")
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestAttemptRepository_AnswersOrderedBySeq(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	attempt := testAttempt(7, "test-42", model.Part5, time.Now())
	// Insert the answer rows in reverse to prove ordering comes from seq,
	// not from insertion order.
	attempt.Answers = []model.AttemptAnswer{
		{Seq: 2, ItemID: "q3", Choice: "C"},
		{Seq: 0, ItemID: "q1", Choice: "A"},
		{Seq: 1, ItemID: "q2", Choice: "B"},
	}
	require.NoError(t, repo.Create(attempt))

	got, err := repo.FindByID(attempt.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, 3)
	assert.Equal(t, "q1", got.Answers[0].ItemID)
	assert.Equal(t, "q2", got.Answers[1].ItemID)
	assert.Equal(t, "q3", got.Answers[2].ItemID)
}

func TestAttemptRepository_FindLatest(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))
	base := time.Now().Truncate(time.Second)

	older := testAttempt(7, "first", model.Part5, base.Add(-time.Hour))
	newer := testAttempt(7, "second", model.Part7, base)
	other := testAttempt(8, "third", model.Part5, base.Add(time.Hour))
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(other))

	got, err := repo.FindLatestByUser(7)
	require.NoError(t, err)
	assert.Equal(t, "second", got.TestID)

	got, err = repo.FindLatestByUserAndSection(7, model.Part5)
	require.NoError(t, err)
	assert.Equal(t, "first", got.TestID)

	_, err = repo.FindLatestByUserAndSection(7, model.Part2)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	_, err = repo.FindLatestByUser(99)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestAttemptRepository_ListByUser(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))
	base := time.Now().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		a := testAttempt(7, "test", model.Part5, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(a))
	}

	attempts, total, err := repo.ListByUser(7, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, attempts, 3)
	// Most recent first.
	assert.True(t, attempts[0].FinishedAt.After(attempts[1].FinishedAt))

	attempts, total, err = repo.ListByUser(7, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, attempts, 2)

	attempts, total, err = repo.ListByUser(99, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, attempts)
}

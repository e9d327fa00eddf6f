package repository

import (
	"context"
	"testing"

	"toeic_prep_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuestions(t *testing.T, repo *QuestionRepository) {
	t.Helper()
	questions := []model.Question{
		{ID: "q1", TestID: "test-42", Part: model.Part5, Answer: "A", Tags: model.StringList{"grammar"}, Order: 2},
		{ID: "q2", TestID: "test-42", Part: model.Part5, Answer: "C", Tags: model.StringList{"grammar"}, Order: 1},
		{ID: "q3", TestID: "test-42", Part: model.Part7, Answer: "B", Tags: model.StringList{"inference", "detail"}, Order: 3},
		{ID: "q4", TestID: "other", Part: model.Part2, Answer: "D", Order: 1},
	}
	require.NoError(t, repo.DB.Create(&questions).Error)
}

func TestQuestionRepository_FetchItemsMap(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))
	seedQuestions(t, repo)

	// Duplicate ids collapse, unknown ids are absent.
	got, err := repo.FetchItemsMap(context.Background(), []string{"q1", "q1", "q3", "ghost"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got["q1"].Answer)
	assert.Equal(t, model.StringList{"inference", "detail"}, got["q3"].Tags)
	_, ok := got["ghost"]
	assert.False(t, ok)
}

func TestQuestionRepository_FetchItemsMap_Empty(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))

	got, err := repo.FetchItemsMap(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuestionRepository_ListByTest(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))
	seedQuestions(t, repo)
	require.NoError(t, repo.DB.Model(&model.Question{}).
		Where("id = ?", "q3").Update("published", false).Error)

	got, err := repo.ListByTest("test-42")
	require.NoError(t, err)
	require.Len(t, got, 2, "unpublished questions are hidden")
	assert.Equal(t, "q2", got[0].ID)
	assert.Equal(t, "q1", got[1].ID)
}

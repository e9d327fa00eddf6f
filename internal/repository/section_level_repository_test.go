package repository

import (
	"testing"

	"toeic_prep_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionLevelRepository_GetLevelNotFound(t *testing.T) {
	repo := NewSectionLevelRepository(newTestDB(t))

	level, found, err := repo.GetLevel(7, model.Part5)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, level)
}

func TestSectionLevelRepository_SetLevelUpserts(t *testing.T) {
	repo := NewSectionLevelRepository(newTestDB(t))

	require.NoError(t, repo.SetLevel(7, model.Part5, 2))
	level, found, err := repo.GetLevel(7, model.Part5)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, level)

	// Second write for the same (user, section) updates in place.
	require.NoError(t, repo.SetLevel(7, model.Part5, 3))
	level, _, err = repo.GetLevel(7, model.Part5)
	require.NoError(t, err)
	assert.Equal(t, 3, level)

	levels, err := repo.ListByUser(7)
	require.NoError(t, err)
	require.Len(t, levels, 1)
}

func TestSectionLevelRepository_ListByUser(t *testing.T) {
	repo := NewSectionLevelRepository(newTestDB(t))

	require.NoError(t, repo.SetLevel(7, model.Part7, 2))
	require.NoError(t, repo.SetLevel(7, model.Part2, 1))
	require.NoError(t, repo.SetLevel(8, model.Part5, 3))

	levels, err := repo.ListByUser(7)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, model.Part2, levels[0].SectionKey)
	assert.Equal(t, model.Part7, levels[1].SectionKey)
}

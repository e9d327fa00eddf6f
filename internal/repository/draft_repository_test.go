package repository

import (
	"context"
	"testing"
	"time"

	"toeic_prep_backend/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftRepo(t *testing.T) (*DraftRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewDraftRepository(rdb, 7*24*time.Hour), mr
}

func TestDraftRepository_UpsertAndGet(t *testing.T) {
	repo, _ := newDraftRepo(t)
	ctx := context.Background()

	draft := &model.Draft{
		UserID:   7,
		TestType: "practice",
		TestKey:  "test-42",
		Answers:  map[string]string{"q1": "A", "q2": "B"},
		AllIDs:   []string{"q1", "q2", "q3"},
		TimeSec:  120,
	}
	require.NoError(t, repo.Upsert(ctx, draft))
	assert.False(t, draft.SavedAt.IsZero())

	got, err := repo.Get(ctx, 7, "practice", "test-42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft.Answers, got.Answers)
	assert.Equal(t, draft.AllIDs, got.AllIDs)
	assert.Equal(t, 120, got.TimeSec)
}

func TestDraftRepository_GetMissing(t *testing.T) {
	repo, _ := newDraftRepo(t)

	got, err := repo.Get(context.Background(), 7, "practice", "never-saved")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftRepository_UpsertReplacesWholeValue(t *testing.T) {
	repo, _ := newDraftRepo(t)
	ctx := context.Background()

	first := &model.Draft{
		UserID:   7,
		TestType: "practice",
		TestKey:  "test-42",
		Answers:  map[string]string{"q1": "A", "q2": "B"},
	}
	require.NoError(t, repo.Upsert(ctx, first))

	// The second save carries fewer answers; nothing from the first survives.
	second := &model.Draft{
		UserID:   7,
		TestType: "practice",
		TestKey:  "test-42",
		Answers:  map[string]string{"q3": "C"},
	}
	require.NoError(t, repo.Upsert(ctx, second))

	got, err := repo.Get(ctx, 7, "practice", "test-42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, map[string]string{"q3": "C"}, got.Answers)
}

func TestDraftRepository_KeysAreScoped(t *testing.T) {
	repo, _ := newDraftRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &model.Draft{
		UserID: 7, TestType: "practice", TestKey: "test-42",
		Answers: map[string]string{"q1": "A"},
	}))

	// Same test key under a different user or test type is a different draft.
	got, err := repo.Get(ctx, 8, "practice", "test-42")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.Get(ctx, 7, "placement", "test-42")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftRepository_Expiry(t *testing.T) {
	repo, mr := newDraftRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &model.Draft{
		UserID: 7, TestType: "practice", TestKey: "test-42",
		Answers: map[string]string{"q1": "A"},
	}))

	mr.FastForward(7*24*time.Hour - time.Minute)
	got, err := repo.Get(ctx, 7, "practice", "test-42")
	require.NoError(t, err)
	assert.NotNil(t, got, "draft is still live just before the TTL")

	mr.FastForward(2 * time.Minute)
	got, err = repo.Get(ctx, 7, "practice", "test-42")
	require.NoError(t, err)
	assert.Nil(t, got, "draft is gone once the TTL lapses")
}

func TestDraftRepository_Delete(t *testing.T) {
	repo, _ := newDraftRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &model.Draft{
		UserID: 7, TestType: "practice", TestKey: "test-42",
		Answers: map[string]string{"q1": "A"},
	}))
	require.NoError(t, repo.Delete(ctx, 7, "practice", "test-42"))

	got, err := repo.Get(ctx, 7, "practice", "test-42")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing draft is not an error.
	assert.NoError(t, repo.Delete(ctx, 7, "practice", "test-42"))
}

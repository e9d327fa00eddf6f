package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"toeic_prep_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// DraftRepository stages in-progress answers in Redis. One draft per
// (user, testType, testKey); every save replaces the whole value and resets
// the TTL, and Redis single-key semantics serialize concurrent saves, so no
// application-level locking is needed. Expiry is enforced by the TTL itself:
// a lapsed draft is unreadable with no background sweep.
type DraftRepository struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewDraftRepository(rdb *redis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{Redis: rdb, TTL: ttl}
}

func draftKey(userID uint, testType, testKey string) string {
	return fmt.Sprintf("draft:%d:%s:%s", userID, testType, testKey)
}

// Upsert replaces the prior draft entirely (no field merging) and resets the
// expiry to now + TTL.
func (r *DraftRepository) Upsert(ctx context.Context, draft *model.Draft) error {
	draft.SavedAt = time.Now()
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	key := draftKey(draft.UserID, draft.TestType, draft.TestKey)
	return r.Redis.Set(ctx, key, payload, r.TTL).Err()
}

// Get returns nil with no error when no live draft exists.
func (r *DraftRepository) Get(ctx context.Context, userID uint, testType, testKey string) (*model.Draft, error) {
	raw, err := r.Redis.Get(ctx, draftKey(userID, testType, testKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var draft model.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) Delete(ctx context.Context, userID uint, testType, testKey string) error {
	return r.Redis.Del(ctx, draftKey(userID, testType, testKey)).Err()
}

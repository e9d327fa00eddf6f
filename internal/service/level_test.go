package service

import (
	"testing"

	"toeic_prep_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func testRecommender() *LevelRecommender {
	return NewLevelRecommender(config.LevelConfig{
		Min:             1,
		Max:             3,
		PromoteAccuracy: 0.85,
		DemoteAccuracy:  0.50,
		MinAttemptItems: 10,
	})
}

func TestLevelRecommender_Recommend(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		hasLevel bool
		total    int
		correct  int
		wantRule string
		wantNew  int
	}{
		{name: "first attempt defaults to min and keep", hasLevel: false, total: 20, correct: 20, wantRule: RuleKeep, wantNew: 1},
		{name: "promote on high accuracy", level: 2, hasLevel: true, total: 20, correct: 18, wantRule: RulePromote, wantNew: 3},
		{name: "promote at exact threshold", level: 1, hasLevel: true, total: 20, correct: 17, wantRule: RulePromote, wantNew: 2},
		{name: "no promote past max", level: 3, hasLevel: true, total: 20, correct: 20, wantRule: RuleKeep, wantNew: 3},
		{name: "demote on low accuracy", level: 2, hasLevel: true, total: 20, correct: 8, wantRule: RuleDemote, wantNew: 1},
		{name: "no demote below min", level: 1, hasLevel: true, total: 20, correct: 0, wantRule: RuleKeep, wantNew: 1},
		{name: "keep in the middle band", level: 2, hasLevel: true, total: 20, correct: 14, wantRule: RuleKeep, wantNew: 2},
		{name: "keep at exact demote boundary", level: 2, hasLevel: true, total: 20, correct: 10, wantRule: RuleKeep, wantNew: 2},
		{name: "small sample never moves", level: 2, hasLevel: true, total: 5, correct: 5, wantRule: RuleKeep, wantNew: 2},
		{name: "zero items keeps", level: 2, hasLevel: true, total: 0, correct: 0, wantRule: RuleKeep, wantNew: 2},
	}

	r := testRecommender()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Recommend(tc.level, tc.hasLevel, tc.total, tc.correct)
			assert.Equal(t, tc.wantRule, got.Rule)
			assert.Equal(t, tc.wantNew, got.NewLevel)
			assert.NotEmpty(t, got.Detail)
			if tc.hasLevel {
				assert.Equal(t, tc.level, got.PreviousLevel)
			}
		})
	}
}

func TestLevelRecommender_Deterministic(t *testing.T) {
	r := testRecommender()
	first := r.Recommend(2, true, 20, 18)
	for i := 0; i < 10; i++ {
		again := r.Recommend(2, true, 20, 18)
		assert.Equal(t, first, again)
	}
}

func TestLevelRecommender_ClampsOutOfRangeLevel(t *testing.T) {
	r := testRecommender()

	got := r.Recommend(99, true, 20, 20)
	assert.Equal(t, 3, got.PreviousLevel)
	assert.Equal(t, RuleKeep, got.Rule)

	got = r.Recommend(0, true, 20, 0)
	assert.Equal(t, 1, got.PreviousLevel)
	assert.Equal(t, RuleKeep, got.Rule)
}

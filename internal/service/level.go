package service

import (
	"fmt"

	"toeic_prep_backend/internal/config"
	"toeic_prep_backend/internal/repository"
	"toeic_prep_backend/internal/util"
)

const (
	RulePromote = "promote"
	RuleDemote  = "demote"
	RuleKeep    = "keep"
)

// LevelRecommendation is advisory: the learner decides whether to apply it.
type LevelRecommendation struct {
	PreviousLevel int    `json:"previousLevel"`
	NewLevel      int    `json:"newLevel"`
	Rule          string `json:"rule"`
	Detail        string `json:"detail"`
}

// LevelRecommender decides promote/demote/keep for one section from the
// accuracy of the just-completed attempt. Pure and deterministic: identical
// inputs always yield the same recommendation.
type LevelRecommender struct {
	cfg config.LevelConfig
}

func NewLevelRecommender(cfg config.LevelConfig) *LevelRecommender {
	config.ApplyLevelDefaults(&cfg)
	return &LevelRecommender{cfg: cfg}
}

// Recommend applies the three-way rule. hasLevel=false means the learner has
// no level on record for the section yet: they start at the minimum with a
// keep rule. Attempts with fewer graded items than the configured floor
// always keep, so one lucky short quiz cannot move a level.
func (r *LevelRecommender) Recommend(currentLevel int, hasLevel bool, total, correct int) LevelRecommendation {
	if !hasLevel {
		return LevelRecommendation{
			PreviousLevel: r.cfg.Min,
			NewLevel:      r.cfg.Min,
			Rule:          RuleKeep,
			Detail:        fmt.Sprintf("First attempt at this section. Starting at level %d.", r.cfg.Min),
		}
	}

	if currentLevel < r.cfg.Min {
		currentLevel = r.cfg.Min
	}
	if currentLevel > r.cfg.Max {
		currentLevel = r.cfg.Max
	}

	acc := accuracy(correct, total)
	pct := int(acc*100 + 0.5)

	if total < r.cfg.MinAttemptItems {
		return LevelRecommendation{
			PreviousLevel: currentLevel,
			NewLevel:      currentLevel,
			Rule:          RuleKeep,
			Detail: fmt.Sprintf("Only %d items graded; at least %d are needed before a level change. Staying at level %d.",
				total, r.cfg.MinAttemptItems, currentLevel),
		}
	}

	switch {
	case acc >= r.cfg.PromoteAccuracy && currentLevel < r.cfg.Max:
		return LevelRecommendation{
			PreviousLevel: currentLevel,
			NewLevel:      currentLevel + 1,
			Rule:          RulePromote,
			Detail: fmt.Sprintf("%d%% accuracy at level %d. Ready to move up to level %d.",
				pct, currentLevel, currentLevel+1),
		}
	case acc < r.cfg.DemoteAccuracy && currentLevel > r.cfg.Min:
		return LevelRecommendation{
			PreviousLevel: currentLevel,
			NewLevel:      currentLevel - 1,
			Rule:          RuleDemote,
			Detail: fmt.Sprintf("%d%% accuracy at level %d. Level %d would be a better fit for now.",
				pct, currentLevel, currentLevel-1),
		}
	default:
		return LevelRecommendation{
			PreviousLevel: currentLevel,
			NewLevel:      currentLevel,
			Rule:          RuleKeep,
			Detail:        fmt.Sprintf("%d%% accuracy at level %d. Staying at level %d.", pct, currentLevel, currentLevel),
		}
	}
}

// LevelService reads and applies per-section levels. A recommendation only
// takes effect when the learner applies it here; the UI always offers a
// "continue at current level" path.
type LevelService struct {
	Levels *repository.SectionLevelRepository
	cfg    config.LevelConfig
}

func NewLevelService(levels *repository.SectionLevelRepository, cfg config.LevelConfig) *LevelService {
	config.ApplyLevelDefaults(&cfg)
	return &LevelService{Levels: levels, cfg: cfg}
}

func (s *LevelService) GetLevel(userID uint, sectionKey string) (int, error) {
	level, found, err := s.Levels.GetLevel(userID, sectionKey)
	if err != nil {
		return 0, err
	}
	if !found {
		return s.cfg.Min, nil
	}
	return level, nil
}

func (s *LevelService) ApplyLevel(userID uint, sectionKey string, level int) error {
	if sectionKey == "" {
		return util.ErrSectionKeyRequired
	}
	if level < s.cfg.Min || level > s.cfg.Max {
		return util.ErrLevelOutOfRange
	}
	return s.Levels.SetLevel(userID, sectionKey, level)
}

type SectionLevelView struct {
	SectionKey string `json:"sectionKey"`
	Level      int    `json:"level"`
}

func (s *LevelService) ListLevels(userID uint) ([]SectionLevelView, error) {
	recs, err := s.Levels.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]SectionLevelView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, SectionLevelView{SectionKey: rec.SectionKey, Level: rec.Level})
	}
	return out, nil
}

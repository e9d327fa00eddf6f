package service

import (
	"sync"

	"toeic_prep_backend/internal/model"
	"toeic_prep_backend/internal/repository"
	"toeic_prep_backend/pkg/logger"

	"go.uber.org/zap"
)

// SkillTagService serves the tag dictionary and implements TagLabeler. The
// dictionary is loaded lazily on first lookup and cached for the process
// lifetime; if the load fails every tag falls back to itself as its own
// label, so breakdowns degrade rather than error.
type SkillTagService struct {
	Repo *repository.SkillTagRepository

	mu     sync.Mutex
	labels map[string]string
	loaded bool
}

func NewSkillTagService(repo *repository.SkillTagRepository) *SkillTagService {
	return &SkillTagService{Repo: repo}
}

func (s *SkillTagService) LabelFor(tag string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.labels = make(map[string]string)
		tags, err := s.Repo.FindEnabled()
		if err != nil {
			logger.Log.Warn("skill tag dictionary unavailable, falling back to raw tags", zap.Error(err))
		} else {
			for _, t := range tags {
				s.labels[t.Code] = t.Label
			}
		}
		s.loaded = true
	}

	if label, ok := s.labels[tag]; ok {
		return label
	}
	return tag
}

// Invalidate drops the cached dictionary so the next lookup reloads it.
func (s *SkillTagService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.labels = nil
}

func (s *SkillTagService) ListTags() ([]model.SkillTag, error) {
	return s.Repo.FindAll()
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ascend/internal/domain/skill"
	"ascend/internal/repository"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, name, category string) (skill.Skill, error)
}

type Skill struct {
	repo   repository.SkillRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *Skill {
	if logger == nil {
		logger = slog.Default()
	}
	return &Skill{repo: repo, cache: cacheOrNoop(cache), ttl: ttl, logger: logger}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	var cached []skill.Skill
	if hit, err := u.cache.GetJSON(ctx, cacheKeySkills, &cached); err == nil && hit {
		return cached, nil
	}

	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if err := u.cache.SetJSON(ctx, cacheKeySkills, items, u.ttl); err != nil {
		u.logger.Debug("skills cache write failed", "err", err)
	}
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, name, category)
	if err != nil {
		if errors.Is(err, repository.ErrSkillAlreadyExists) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		return skill.Skill{}, ErrInternal
	}

	// Paths embed skill names, so both views go stale.
	_ = u.cache.Delete(ctx, cacheKeySkills, cacheKeyPaths)
	return created, nil
}

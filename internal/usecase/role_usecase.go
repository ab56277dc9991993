package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ascend/internal/domain/role"
	"ascend/internal/domain/skill"
	"ascend/internal/repository"

	"github.com/google/uuid"
)

type RoleUsecase interface {
	ListRoles(ctx context.Context) ([]role.Role, error)
	RoleSkills(ctx context.Context, roleID uuid.UUID) ([]skill.Skill, error)
	ListPaths(ctx context.Context) ([]role.Path, error)
}

type Role struct {
	repo   repository.RoleRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewRoleUsecase(repo repository.RoleRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *Role {
	if logger == nil {
		logger = slog.Default()
	}
	return &Role{repo: repo, cache: cacheOrNoop(cache), ttl: ttl, logger: logger}
}

func (u *Role) ListRoles(ctx context.Context) ([]role.Role, error) {
	var cached []role.Role
	if hit, err := u.cache.GetJSON(ctx, cacheKeyRoles, &cached); err == nil && hit {
		return cached, nil
	}

	roles, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	u.store(ctx, cacheKeyRoles, roles)
	return roles, nil
}

func (u *Role) RoleSkills(ctx context.Context, roleID uuid.UUID) ([]skill.Skill, error) {
	if roleID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if _, err := u.repo.GetByID(ctx, roleID); err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, ErrInternal
	}

	skills, err := u.repo.SkillsForRole(ctx, roleID)
	if err != nil {
		return nil, ErrInternal
	}
	return skills, nil
}

func (u *Role) ListPaths(ctx context.Context) ([]role.Path, error) {
	var cached []role.Path
	if hit, err := u.cache.GetJSON(ctx, cacheKeyPaths, &cached); err == nil && hit {
		return cached, nil
	}

	roles, err := u.repo.ListWithSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	paths := role.GroupPaths(roles)
	u.store(ctx, cacheKeyPaths, paths)
	return paths, nil
}

func (u *Role) store(ctx context.Context, key string, v any) {
	if err := u.cache.SetJSON(ctx, key, v, u.ttl); err != nil {
		u.logger.Debug("cache write failed", "key", key, "err", err)
	}
}

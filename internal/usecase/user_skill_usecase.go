package usecase

import (
	"context"
	"errors"

	"ascend/internal/domain/event"
	"ascend/internal/domain/skill"
	"ascend/internal/repository"

	"github.com/google/uuid"
)

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error)
	RemoveUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error
}

type UserSkill struct {
	repo   repository.UserSkillRepository
	events Publisher
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, events Publisher) *UserSkill {
	return &UserSkill{repo: repo, events: publisherOrNoop(events)}
}

func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error) {
	if skillID == uuid.Nil {
		return skill.UserSkill{}, ErrInvalidInput
	}

	exists, err := u.repo.SkillExistsByID(ctx, skillID)
	if err != nil {
		return skill.UserSkill{}, ErrInternal
	}
	if !exists {
		return skill.UserSkill{}, ErrSkillNotFound
	}

	created, err := u.repo.Create(ctx, userID, skillID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillExists):
			return skill.UserSkill{}, ErrUserSkillExists
		case errors.Is(err, repository.ErrSkillNotFound):
			return skill.UserSkill{}, ErrSkillNotFound
		default:
			return skill.UserSkill{}, ErrInternal
		}
	}

	u.events.Publish(userID, event.TypeSkillsUpdated)
	return created, nil
}

// RemoveUserSkill deletes by association id, not skill id.
func (u *UserSkill) RemoveUserSkill(ctx context.Context, userID uuid.UUID, userSkillID uuid.UUID) error {
	if userSkillID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.Delete(ctx, userSkillID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillNotFound):
			return ErrUserSkillNotFound
		case errors.Is(err, repository.ErrForbidden):
			return ErrForbidden
		default:
			return ErrInternal
		}
	}

	u.events.Publish(userID, event.TypeSkillsUpdated)
	return nil
}

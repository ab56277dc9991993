package usecase

import (
	"context"
	"errors"

	"ascend/internal/domain/resource"
	"ascend/internal/domain/role"
	"ascend/internal/domain/skillgap"
	"ascend/internal/repository"

	"github.com/google/uuid"
)

type SkillGapReport struct {
	Role   role.Role
	Result skillgap.Result
}

type SkillGapUsecase interface {
	Compute(ctx context.Context, userID, roleID uuid.UUID) (SkillGapReport, error)
	LearningResources(ctx context.Context, userID, roleID uuid.UUID, limit int) ([]resource.Match, error)
}

type SkillGap struct {
	roles      repository.RoleRepository
	userSkills repository.UserSkillRepository
	resources  repository.LearningResourceRepository
}

func NewSkillGapUsecase(roles repository.RoleRepository, userSkills repository.UserSkillRepository, resources repository.LearningResourceRepository) *SkillGap {
	return &SkillGap{roles: roles, userSkills: userSkills, resources: resources}
}

func (u *SkillGap) Compute(ctx context.Context, userID, roleID uuid.UUID) (SkillGapReport, error) {
	if roleID == uuid.Nil {
		return SkillGapReport{}, ErrInvalidInput
	}

	ro, err := u.roles.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return SkillGapReport{}, ErrRoleNotFound
		}
		return SkillGapReport{}, ErrInternal
	}

	required, err := u.roles.SkillsForRole(ctx, roleID)
	if err != nil {
		return SkillGapReport{}, ErrInternal
	}
	owned, err := u.userSkills.OwnedSkillIDs(ctx, userID)
	if err != nil {
		return SkillGapReport{}, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(required))
	names := make(map[uuid.UUID]string, len(required))
	for _, s := range required {
		ids = append(ids, s.ID)
		names[s.ID] = s.Name
	}

	return SkillGapReport{Role: ro, Result: skillgap.Compute(ids, owned, names)}, nil
}

// LearningResources returns stored resources that teach the skills still
// missing for roleID. A closed gap yields an empty list.
func (u *SkillGap) LearningResources(ctx context.Context, userID, roleID uuid.UUID, limit int) ([]resource.Match, error) {
	report, err := u.Compute(ctx, userID, roleID)
	if err != nil {
		return nil, err
	}
	if len(report.Result.Missing) == 0 {
		return []resource.Match{}, nil
	}

	ids := make([]uuid.UUID, 0, len(report.Result.Missing))
	for _, s := range report.Result.Missing {
		ids = append(ids, s.ID)
	}

	out, err := u.resources.ForSkills(ctx, ids, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

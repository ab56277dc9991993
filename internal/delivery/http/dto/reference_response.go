package dto

import (
	"ascend/internal/domain/role"
	"ascend/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category}
}

func NewSkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkillResponse(s))
	}
	return out
}

type RoleResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	PathName string    `json:"path_name"`
	Position int       `json:"position"`
}

func NewRoleResponse(r role.Role) RoleResponse {
	return RoleResponse{ID: r.ID, Name: r.Name, PathName: r.PathName, Position: r.Position}
}

type PathRoleResponse struct {
	RoleResponse
	Skills []SkillResponse `json:"skills"`
}

type PathResponse struct {
	Name  string             `json:"name"`
	Roles []PathRoleResponse `json:"roles"`
}

func NewPathResponses(paths []role.Path) []PathResponse {
	out := make([]PathResponse, 0, len(paths))
	for _, p := range paths {
		pr := PathResponse{Name: p.Name, Roles: make([]PathRoleResponse, 0, len(p.Roles))}
		for _, r := range p.Roles {
			pr.Roles = append(pr.Roles, PathRoleResponse{
				RoleResponse: NewRoleResponse(r.Role),
				Skills:       NewSkillResponses(r.Skills),
			})
		}
		out = append(out, pr)
	}
	return out
}

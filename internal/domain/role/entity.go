package role

import (
	"github.com/google/uuid"

	"ascend/internal/domain/skill"
)

// Role is a target position; roles sharing PathName form a career path and
// are ordered by Position.
type Role struct {
	ID       uuid.UUID
	Name     string
	PathName string
	Position int
}

type RoleWithSkills struct {
	Role
	Skills []skill.Skill
}

type Path struct {
	Name  string
	Roles []RoleWithSkills
}

// GroupPaths folds roles into paths, keeping the first-seen order of path
// names and the given order of roles within each path.
func GroupPaths(roles []RoleWithSkills) []Path {
	idx := map[string]int{}
	out := make([]Path, 0)
	for _, r := range roles {
		i, ok := idx[r.PathName]
		if !ok {
			i = len(out)
			idx[r.PathName] = i
			out = append(out, Path{Name: r.PathName})
		}
		out[i].Roles = append(out[i].Roles, r)
	}
	return out
}

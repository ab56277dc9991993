package repository

import (
	"context"

	"ascend/internal/database"
	"ascend/internal/domain/role"
	"ascend/internal/domain/skill"

	"github.com/google/uuid"
)

type RoleRepository interface {
	List(ctx context.Context) ([]role.Role, error)
	GetByID(ctx context.Context, id uuid.UUID) (role.Role, error)
	SkillsForRole(ctx context.Context, roleID uuid.UUID) ([]skill.Skill, error)
	ListWithSkills(ctx context.Context) ([]role.RoleWithSkills, error)
}

type PostgresRoleRepository struct {
	db database.DB
}

func NewPostgresRoleRepository(db database.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) List(ctx context.Context) ([]role.Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, path_name, position FROM roles ORDER BY path_name ASC, position ASC, name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Role, 0)
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.PathName, &ro.Position); err != nil {
			return nil, err
		}
		out = append(out, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (role.Role, error) {
	var ro role.Role
	err := r.db.QueryRow(ctx,
		`SELECT id, name, path_name, position FROM roles WHERE id = $1`, id,
	).Scan(&ro.ID, &ro.Name, &ro.PathName, &ro.Position)
	if err != nil {
		if database.IsNoRows(err) {
			return role.Role{}, ErrRoleNotFound
		}
		return role.Role{}, err
	}
	return ro, nil
}

// SkillsForRole returns the role's required skills in their curated order.
func (r *PostgresRoleRepository) SkillsForRole(ctx context.Context, roleID uuid.UUID) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.category, s.created_at
		 FROM role_skills rs
		 JOIN skills s ON s.id = rs.skill_id
		 WHERE rs.role_id = $1
		 ORDER BY rs.position ASC, rs.id ASC`,
		roleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithSkills loads every role with its skills in one round trip, ordered
// by path then position.
func (r *PostgresRoleRepository) ListWithSkills(ctx context.Context) ([]role.RoleWithSkills, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.name, r.path_name, r.position, s.id, s.name, s.category
		 FROM roles r
		 LEFT JOIN role_skills rs ON rs.role_id = r.id
		 LEFT JOIN skills s ON s.id = rs.skill_id
		 ORDER BY r.path_name ASC, r.position ASC, r.name ASC, rs.position ASC, rs.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.RoleWithSkills, 0)
	idx := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			ro        role.Role
			skillID   *uuid.UUID
			skillName *string
			category  *string
		)
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.PathName, &ro.Position, &skillID, &skillName, &category); err != nil {
			return nil, err
		}

		i, ok := idx[ro.ID]
		if !ok {
			i = len(out)
			idx[ro.ID] = i
			out = append(out, role.RoleWithSkills{Role: ro, Skills: make([]skill.Skill, 0)})
		}
		if skillID != nil && skillName != nil {
			s := skill.Skill{ID: *skillID, Name: *skillName}
			if category != nil {
				s.Category = *category
			}
			out[i].Skills = append(out[i].Skills, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

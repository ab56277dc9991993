package seeder

import (
	"context"
	"fmt"

	"ascend/internal/database"
)

type RoleItem struct {
	Name   string
	Skills []string
}

// PathItem lists the roles of a career path in progression order.
type PathItem struct {
	Name  string
	Roles []RoleItem
}

var DefaultPaths = []PathItem{
	{
		Name: "Frontend Engineering",
		Roles: []RoleItem{
			{Name: "Junior Frontend Developer", Skills: []string{"HTML", "CSS", "JavaScript"}},
			{Name: "Frontend Developer", Skills: []string{"HTML", "CSS", "JavaScript", "TypeScript", "React"}},
			{Name: "Senior Frontend Engineer", Skills: []string{"TypeScript", "React", "Accessibility", "Testing", "System Design", "Mentoring"}},
		},
	},
	{
		Name: "Backend Engineering",
		Roles: []RoleItem{
			{Name: "Junior Backend Developer", Skills: []string{"Go", "SQL", "REST API Design"}},
			{Name: "Backend Developer", Skills: []string{"Go", "PostgreSQL", "Redis", "REST API Design", "Docker", "Testing"}},
			{Name: "Senior Backend Engineer", Skills: []string{"Go", "PostgreSQL", "System Design", "Kubernetes", "Observability", "Mentoring"}},
		},
	},
	{
		Name: "Platform Engineering",
		Roles: []RoleItem{
			{Name: "DevOps Engineer", Skills: []string{"Docker", "CI/CD", "AWS", "Terraform"}},
			{Name: "Site Reliability Engineer", Skills: []string{"Kubernetes", "Observability", "AWS", "Terraform", "Go"}},
		},
	},
	{
		Name: "Data Science",
		Roles: []RoleItem{
			{Name: "Data Analyst", Skills: []string{"SQL", "Statistics", "Data Visualization", "Communication"}},
			{Name: "Data Scientist", Skills: []string{"Python", "Pandas", "Statistics", "Machine Learning", "SQL"}},
		},
	},
	{
		Name: "Engineering Management",
		Roles: []RoleItem{
			{Name: "Tech Lead", Skills: []string{"System Design", "Mentoring", "Communication"}},
			{Name: "Engineering Manager", Skills: []string{"Mentoring", "Communication", "Project Management"}},
		},
	},
}

// CareerPathsSeeder upserts roles keyed by (path_name, position) and links each
// role to its skills by name. Skill names absent from the catalog are an error.
type CareerPathsSeeder struct {
	Paths []PathItem
}

func (CareerPathsSeeder) Name() string { return "career_paths" }

func (s CareerPathsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "roles", "id", "name", "path_name", "position"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "role_skills", "id", "role_id", "skill_id", "position"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, p := range s.Paths {
			for i, r := range p.Roles {
				var roleID string
				err := tx.QueryRow(
					ctx,
					`INSERT INTO roles (id, name, path_name, position)
					 VALUES (gen_random_uuid(), $1, $2, $3)
					 ON CONFLICT (path_name, position) DO UPDATE SET name = EXCLUDED.name
					 RETURNING id::text`,
					r.Name,
					p.Name,
					i+1,
				).Scan(&roleID)
				if err != nil {
					return fmt.Errorf("upsert role %q: %w", r.Name, err)
				}

				for j, skill := range r.Skills {
					n, err := tx.Exec(
						ctx,
						`INSERT INTO role_skills (id, role_id, skill_id, position)
						 SELECT gen_random_uuid(), $1::uuid, s.id, $3 FROM skills s WHERE s.name = $2
						 ON CONFLICT (role_id, skill_id) DO UPDATE SET position = EXCLUDED.position`,
						roleID,
						skill,
						j+1,
					)
					if err != nil {
						return fmt.Errorf("link %q to %q: %w", r.Name, skill, err)
					}
					if n == 0 {
						if err := ensureSkillExists(ctx, tx, skill); err != nil {
							return err
						}
					}
				}
			}
		}
		return nil
	})
}

func ensureSkillExists(ctx context.Context, q database.Querier, name string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM skills WHERE name = $1)`, name).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("unknown skill %q", name)
	}
	return nil
}

package seeder

import (
	"context"
	"fmt"

	"ascend/internal/database"
)

type SkillItem struct {
	Name     string
	Category string
}

var DefaultSkills = []SkillItem{
	{Name: "HTML", Category: "Frontend"},
	{Name: "CSS", Category: "Frontend"},
	{Name: "JavaScript", Category: "Programming Language"},
	{Name: "TypeScript", Category: "Programming Language"},
	{Name: "React", Category: "Frontend"},
	{Name: "Accessibility", Category: "Frontend"},
	{Name: "Testing", Category: "Engineering Practice"},
	{Name: "Go", Category: "Programming Language"},
	{Name: "Python", Category: "Programming Language"},
	{Name: "SQL", Category: "Database"},
	{Name: "PostgreSQL", Category: "Database"},
	{Name: "Redis", Category: "Database"},
	{Name: "REST API Design", Category: "Backend"},
	{Name: "System Design", Category: "Architecture"},
	{Name: "Docker", Category: "DevOps"},
	{Name: "Kubernetes", Category: "DevOps"},
	{Name: "CI/CD", Category: "DevOps"},
	{Name: "AWS", Category: "Cloud"},
	{Name: "Terraform", Category: "DevOps"},
	{Name: "Observability", Category: "DevOps"},
	{Name: "Statistics", Category: "Data"},
	{Name: "Pandas", Category: "Data"},
	{Name: "Machine Learning", Category: "Data"},
	{Name: "Data Visualization", Category: "Data"},
	{Name: "Communication", Category: "Leadership"},
	{Name: "Mentoring", Category: "Leadership"},
	{Name: "Project Management", Category: "Leadership"},
}

type SkillsSeeder struct {
	Items []SkillItem
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range s.Items {
			if it.Name == "" {
				continue
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
				it.Name,
				it.Category,
			); err != nil {
				return fmt.Errorf("insert skill %q: %w", it.Name, err)
			}
		}
		return nil
	})
}

package repository

import (
	"context"
	"strings"

	"ascend/internal/database"
	"ascend/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	List(ctx context.Context) ([]skill.Skill, error)
	Create(ctx context.Context, name, category string) (skill.Skill, error)
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	IDsByNames(ctx context.Context, names []string) (map[string]uuid.UUID, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category, created_at FROM skills ORDER BY name ASC`)
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

func (r *PostgresSkillRepository) Create(ctx context.Context, name, category string) (skill.Skill, error) {
	s := skill.Skill{ID: uuid.New(), Name: strings.TrimSpace(name), Category: strings.TrimSpace(category)}
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3) RETURNING created_at`,
		s.ID, s.Name, s.Category,
	).Scan(&s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		return skill.Skill{}, err
	}
	return s, nil
}

// NamesByIDs resolves skill names; ids with no row are absent from the map.
func (r *PostgresSkillRepository) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills WHERE id = ANY($1::uuid[])`, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

// IDsByNames matches names case-insensitively; keys of the result are the
// lower-cased input names.
func (r *PostgresSkillRepository) IDsByNames(ctx context.Context, names []string) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID, len(names))
	if len(names) == 0 {
		return out, nil
	}

	lowered := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			lowered = append(lowered, n)
		}
	}

	rows, err := r.db.Query(ctx, `SELECT id, lower(name) FROM skills WHERE lower(name) = ANY($1)`, lowered)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

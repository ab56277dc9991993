package repository

import (
	"context"
	"strings"

	"ascend/internal/database"
	"ascend/internal/domain/resource"

	"github.com/google/uuid"
)

type LearningResourceRepository interface {
	// Upsert inserts or refreshes a resource keyed by URL and links it to
	// skillIDs. It returns the stored id.
	Upsert(ctx context.Context, res resource.LearningResource, skillIDs []uuid.UUID) (uuid.UUID, error)
	// ForSkills returns resources linked to any of skillIDs with the names of
	// the linked skills, most covering first.
	ForSkills(ctx context.Context, skillIDs []uuid.UUID, limit int) ([]resource.Match, error)
}

type PostgresLearningResourceRepository struct {
	db database.DB
}

func NewPostgresLearningResourceRepository(db database.DB) *PostgresLearningResourceRepository {
	return &PostgresLearningResourceRepository{db: db}
}

func (r *PostgresLearningResourceRepository) Upsert(ctx context.Context, res resource.LearningResource, skillIDs []uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO learning_resources (id, title, description, url, type, source)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (url) DO UPDATE
			 SET title = EXCLUDED.title, description = EXCLUDED.description, type = EXCLUDED.type
			 RETURNING id`,
			uuid.New(),
			strings.TrimSpace(res.Title),
			strings.TrimSpace(res.Description),
			strings.TrimSpace(res.URL),
			orDefault(res.Type, "Article"),
			res.Source,
		).Scan(&id)
		if err != nil {
			return err
		}

		for _, sid := range skillIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO learning_resource_skills (resource_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				id, sid,
			); err != nil {
				return err
			}
		}
		return nil
	})
	return id, err
}

func (r *PostgresLearningResourceRepository) ForSkills(ctx context.Context, skillIDs []uuid.UUID, limit int) ([]resource.Match, error) {
	if len(skillIDs) == 0 {
		return []resource.Match{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT lr.id, lr.title, lr.description, lr.url, lr.type, lr.source, lr.created_at,
		        array_agg(s.name ORDER BY s.name)
		 FROM learning_resources lr
		 JOIN learning_resource_skills lrs ON lrs.resource_id = lr.id
		 JOIN skills s ON s.id = lrs.skill_id
		 WHERE lrs.skill_id = ANY($1::uuid[])
		 GROUP BY lr.id
		 ORDER BY count(*) DESC, lr.created_at DESC
		 LIMIT $2`,
		uuidStrings(skillIDs), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resource.Match, 0)
	for rows.Next() {
		var m resource.Match
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.URL, &m.Type, &m.Source, &m.CreatedAt, &m.MatchingSkills); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

package repository

import (
	"context"

	"ascend/internal/database"
	"ascend/internal/domain/achievement"

	"github.com/google/uuid"
)

type AchievementRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]achievement.Achievement, error)
	Create(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type PostgresAchievementRepository struct {
	db database.DB
}

func NewPostgresAchievementRepository(db database.DB) *PostgresAchievementRepository {
	return &PostgresAchievementRepository{db: db}
}

// ListByUser returns newest first.
func (r *PostgresAchievementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]achievement.Achievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, date, created_at
		 FROM achievements
		 WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]achievement.Achievement, 0)
	for rows.Next() {
		var a achievement.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Date, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAchievementRepository) Create(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO achievements (id, user_id, title, description, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		a.ID, a.UserID, a.Title, a.Description, a.Date,
	).Scan(&a.CreatedAt)
	if err != nil {
		return achievement.Achievement{}, err
	}
	return a, nil
}

func (r *PostgresAchievementRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	var owner uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT user_id FROM achievements WHERE id = $1`, id).Scan(&owner); err != nil {
		if database.IsNoRows(err) {
			return ErrAchievementNotFound
		}
		return err
	}
	if owner != userID {
		return ErrForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM achievements WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

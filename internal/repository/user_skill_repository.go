package repository

import (
	"context"

	"ascend/internal/database"
	"ascend/internal/domain/skill"

	"github.com/google/uuid"
)

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	OwnedSkillIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	SkillExistsByID(ctx context.Context, skillID uuid.UUID) (bool, error)
	Create(ctx context.Context, userID, skillID uuid.UUID) (skill.UserSkill, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		var us skill.UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) OwnedSkillIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT skill_id FROM user_skills WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uuid.UUID]struct{}{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

func (r *PostgresUserSkillRepository) SkillExistsByID(ctx context.Context, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, skillID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, userID, skillID uuid.UUID) (skill.UserSkill, error) {
	us := skill.UserSkill{ID: uuid.New(), UserID: userID, SkillID: skillID}
	err := r.db.QueryRow(ctx,
		`WITH ins AS (
			INSERT INTO user_skills (id, user_id, skill_id) VALUES ($1, $2, $3)
			RETURNING skill_id, created_at
		 )
		 SELECT s.name, ins.created_at FROM ins JOIN skills s ON s.id = ins.skill_id`,
		us.ID, userID, skillID,
	).Scan(&us.SkillName, &us.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return skill.UserSkill{}, ErrUserSkillExists
		case isForeignKeyViolation(err):
			return skill.UserSkill{}, ErrSkillNotFound
		}
		return skill.UserSkill{}, err
	}
	return us, nil
}

// Delete removes the association row id if userID owns it.
func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if database.IsNoRows(err) {
			return ErrUserSkillNotFound
		}
		return err
	}
	if owner != userID {
		return ErrForbidden
	}

	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

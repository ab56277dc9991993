package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"ascend/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, email, password_hash, name, title, department, location, experience, career_goals, avatar_url, created_at, updated_at`

// UserRepository keeps prepared statements on the database/sql bridge of the
// pgx pool; close it before the pool.
type UserRepository struct {
	db *sql.DB

	stmtCreate        *sql.Stmt
	stmtGetByID       *sql.Stmt
	stmtGetByEmail    *sql.Stmt
	stmtUpdateProfile *sql.Stmt
	stmtDelete        *sql.Stmt
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(ctx context.Context, db *sql.DB) (*UserRepository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	r := &UserRepository{db: db}

	prepare := func(dst **sql.Stmt, query string) error {
		s, err := db.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}

	steps := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&r.stmtCreate, `INSERT INTO users (id, email, password_hash, name) VALUES ($1, $2, $3, $4)`},
		{&r.stmtGetByID, `SELECT ` + userColumns + ` FROM users WHERE id = $1`},
		{&r.stmtGetByEmail, `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`},
		{&r.stmtUpdateProfile, `UPDATE users
			SET name = $2, title = $3, department = $4, location = $5, experience = $6,
			    career_goals = $7, avatar_url = $8, updated_at = now()
			WHERE id = $1
			RETURNING ` + userColumns},
		{&r.stmtDelete, `SELECT delete_user($1)`},
	}
	for _, s := range steps {
		if err := prepare(s.dst, s.query); err != nil {
			_ = r.Close()
			return nil, err
		}
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	for _, s := range []*sql.Stmt{r.stmtCreate, r.stmtGetByID, r.stmtGetByEmail, r.stmtUpdateProfile, r.stmtDelete} {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, strings.TrimSpace(u.Email), u.PasswordHash, u.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, strings.TrimSpace(email)))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p user.Profile) (user.User, error) {
	return scanUser(r.stmtUpdateProfile.QueryRowContext(ctx,
		id, p.Name, p.Title, p.Department, p.Location, p.Experience, p.CareerGoals, p.AvatarURL,
	))
}

// Delete removes the account and everything it owns through delete_user.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.stmtDelete.ExecContext(ctx, id)
	return err
}

func scanUser(row *sql.Row) (user.User, error) {
	var (
		u         user.User
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.Name, &u.Title, &u.Department, &u.Location, &u.Experience, &u.CareerGoals, &u.AvatarURL,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return u, nil
}

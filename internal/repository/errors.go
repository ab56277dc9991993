package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillAlreadyExists  = errors.New("skill already exists")
	ErrUserSkillNotFound   = errors.New("user skill not found")
	ErrUserSkillExists     = errors.New("user already has skill")
	ErrForbidden           = errors.New("forbidden")
	ErrRoleNotFound        = errors.New("role not found")
	ErrAchievementNotFound = errors.New("achievement not found")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

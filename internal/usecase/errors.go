package usecase

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternal             = errors.New("internal error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrUserNotFound         = errors.New("user not found")
	ErrSkillNotFound        = errors.New("skill not found")
	ErrSkillAlreadyExists   = errors.New("skill already exists")
	ErrUserSkillExists      = errors.New("user already has skill")
	ErrUserSkillNotFound    = errors.New("user skill not found")
	ErrForbidden            = errors.New("forbidden")
	ErrRoleNotFound         = errors.New("role not found")
	ErrAchievementNotFound  = errors.New("achievement not found")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrUpstream             = errors.New("upstream model failure")
	ErrMalformedModelOutput = errors.New("malformed model output")
)

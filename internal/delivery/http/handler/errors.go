package handler

import (
	"errors"

	"ascend/internal/delivery/http/middleware"
	"ascend/internal/pkg/response"
	"ascend/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var errUnauthorized = middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, errUnauthorized
	}
	return id, nil
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return id, nil
}

func queryUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, name+" is required", nil, err)
	}
	return id, nil
}

// mapUsecaseError translates the shared usecase sentinels. Handlers with
// endpoint-specific wording check their own cases first.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrRoleNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Role not found", nil, err)
	case errors.Is(err, usecase.ErrAchievementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Achievement not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not in your profile", nil, err)
	case errors.Is(err, usecase.ErrSkillAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, usecase.ErrUserSkillExists):
		return middleware.NewAppError(fiber.StatusConflict, "You already have this skill.", nil, err)
	case errors.Is(err, usecase.ErrStorageUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Storage unavailable", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

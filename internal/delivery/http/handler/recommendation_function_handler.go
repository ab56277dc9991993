package handler

import (
	"context"
	"encoding/json"
	"errors"

	"ascend/internal/delivery/http/middleware"
	"ascend/internal/domain/user"
	"ascend/internal/pkg/jwt"
	"ascend/internal/pkg/response"
	"ascend/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgNoSkills         = "No skills provided"
	msgTooManySkills    = "Too many skills provided"
	msgGenerateFailed   = "Failed to generate recommendations"
)

// RecommendationFunctionHandler serves the learning-recommendation function.
// It sits outside the /api envelope: errors are {"error": "..."} and success
// is the bare JSON array.
type RecommendationFunctionHandler struct {
	uc       usecase.RecommendationUsecase
	jwt      jwt.Service
	accounts AccountLookup
}

// AccountLookup confirms that the token's user still exists.
type AccountLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

type recommendationRequest struct {
	MissingSkills []string `json:"missingSkills"`
}

func NewRecommendationFunctionHandler(uc usecase.RecommendationUsecase, jwtSvc jwt.Service, accounts AccountLookup) *RecommendationFunctionHandler {
	return &RecommendationFunctionHandler{uc: uc, jwt: jwtSvc, accounts: accounts}
}

func (h *RecommendationFunctionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/get-learning-recommendations", h.Handle)
}

func (h *RecommendationFunctionHandler) Handle(c fiber.Ctx) error {
	token, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return response.FunctionError(c, fiber.StatusUnauthorized, msgNotAuthenticated)
	}
	claims, err := h.jwt.ValidateAccess(token)
	if err != nil {
		return response.FunctionError(c, fiber.StatusUnauthorized, msgNotAuthenticated)
	}
	if _, err := h.accounts.GetByID(c.Context(), claims.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return response.FunctionError(c, fiber.StatusUnauthorized, msgNotAuthenticated)
		}
		return response.FunctionError(c, fiber.StatusInternalServerError, msgGenerateFailed)
	}

	var req recommendationRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || len(req.MissingSkills) == 0 {
		return response.FunctionError(c, fiber.StatusBadRequest, msgNoSkills)
	}

	items, err := h.uc.Generate(c.Context(), req.MissingSkills)
	if err != nil {
		if errors.Is(err, usecase.ErrTooManySkills) {
			return response.FunctionError(c, fiber.StatusBadRequest, msgTooManySkills)
		}
		if errors.Is(err, usecase.ErrInvalidInput) {
			return response.FunctionError(c, fiber.StatusBadRequest, msgNoSkills)
		}
		return response.FunctionError(c, fiber.StatusInternalServerError, functionErrorMessage(err))
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func functionErrorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrMalformedModelOutput):
		return "Model returned an invalid recommendation list"
	case errors.Is(err, usecase.ErrUpstream):
		return "Recommendation model unavailable"
	default:
		return msgGenerateFailed
	}
}

package handler

import (
	"ascend/internal/delivery/http/dto"
	"ascend/internal/delivery/http/middleware"
	"ascend/internal/pkg/response"
	"ascend/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AchievementHandler struct {
	uc usecase.AchievementUsecase
}

type addAchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func NewAchievementHandler(uc usecase.AchievementUsecase) *AchievementHandler {
	return &AchievementHandler{uc: uc}
}

func (h *AchievementHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/achievements")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Delete("/:id", h.Delete)
}

func (h *AchievementHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.AchievementResponse, 0, len(items))
	for _, a := range items {
		res = append(res, dto.NewAchievementResponse(a))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *AchievementHandler) Add(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addAchievementRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Add(c.Context(), userID, usecase.AddAchievementInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewAchievementResponse(created))
}

func (h *AchievementHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

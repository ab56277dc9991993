package handler

import (
	"strconv"

	"ascend/internal/delivery/http/dto"
	"ascend/internal/pkg/response"
	"ascend/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultResourceLimit = 20
	maxResourceLimit     = 100
)

type DashboardHandler struct {
	uc usecase.SkillGapUsecase
}

func NewDashboardHandler(uc usecase.SkillGapUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/skill-gap", h.SkillGap)
	r.Get("/me/learning-resources", h.LearningResources)
}

func (h *DashboardHandler) SkillGap(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	roleID, err := queryUUID(c, "role_id")
	if err != nil {
		return err
	}

	report, err := h.uc.Compute(c.Context(), userID, roleID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewSkillGapResponse(dto.NewRoleResponse(report.Role), report.Result))
}

func (h *DashboardHandler) LearningResources(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	roleID, err := queryUUID(c, "role_id")
	if err != nil {
		return err
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultResourceLimit)))
	if err != nil || limit <= 0 || limit > maxResourceLimit {
		limit = defaultResourceLimit
	}

	items, err := h.uc.LearningResources(c.Context(), userID, roleID, limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewLearningResourceResponses(items))
}

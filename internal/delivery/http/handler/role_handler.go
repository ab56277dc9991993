package handler

import (
	"ascend/internal/delivery/http/dto"
	"ascend/internal/pkg/response"
	"ascend/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RoleHandler struct {
	uc usecase.RoleUsecase
}

func NewRoleHandler(uc usecase.RoleUsecase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

func (h *RoleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/roles", h.List)
	r.Get("/roles/:id/skills", h.Skills)
	r.Get("/paths", h.Paths)
}

func (h *RoleHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListRoles(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.RoleResponse, 0, len(items))
	for _, r := range items {
		res = append(res, dto.NewRoleResponse(r))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *RoleHandler) Skills(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.RoleSkills(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponses(items))
}

func (h *RoleHandler) Paths(c fiber.Ctx) error {
	paths, err := h.uc.ListPaths(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPathResponses(paths))
}

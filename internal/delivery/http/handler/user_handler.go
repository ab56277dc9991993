package handler

import (
	"ascend/internal/delivery/http/dto"
	"ascend/internal/delivery/http/middleware"
	"ascend/internal/pkg/response"
	"ascend/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Delete("/me", h.DeleteMe)
	r.Post("/me/avatar", h.PresignAvatar)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, err := h.uc.UpdateProfile(c.Context(), userID, req.Patch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(usr))
}

func (h *UserHandler) DeleteMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAccount(c.Context(), userID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *UserHandler) PresignAvatar(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.AvatarUploadRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	up, err := h.uc.PresignAvatar(c.Context(), userID, req.FileExt)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AvatarUploadResponse{
		Key:       up.Key,
		UploadURL: up.UploadURL,
		PublicURL: up.PublicURL,
		ExpiresAt: up.ExpiresAt,
	})
}

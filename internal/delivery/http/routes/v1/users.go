package v1

import (
	"ascend/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type UserHandlers struct {
	User        *handler.UserHandler
	UserSkill   *handler.UserSkillHandler
	Achievement *handler.AchievementHandler
	Dashboard   *handler.DashboardHandler
}

func RegisterUsers(r fiber.Router, h UserHandlers) {
	if r == nil {
		return
	}
	if h.User == nil {
		return
	}

	h.User.RegisterRoutes(r)
	if h.UserSkill != nil {
		h.UserSkill.RegisterRoutes(r)
	}
	if h.Achievement != nil {
		h.Achievement.RegisterRoutes(r)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(r)
	}
}

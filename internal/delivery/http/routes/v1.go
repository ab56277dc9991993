package routes

import (
	"ascend/internal/delivery/http/middleware"
	v1 "ascend/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h Handlers, auth *middleware.AuthMiddleware) {
	if r == nil || auth == nil {
		return
	}

	v1.RegisterAuth(r.Group("/auth"), h.Auth)
	v1.RegisterReference(r, auth.Middleware(), h.Skill, h.Role)

	v1.RegisterUsers(r.Group("/users", auth.Middleware()), v1.UserHandlers{
		User:        h.User,
		UserSkill:   h.UserSkill,
		Achievement: h.Achievement,
		Dashboard:   h.Dashboard,
	})
}

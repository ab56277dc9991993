package v1

import (
	"ascend/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterAuth(r fiber.Router, authHandler *handler.AuthHandler) {
	if r == nil || authHandler == nil {
		return
	}
	authHandler.RegisterRoutes(r)
}

// RegisterReference mounts the catalog reads publicly and skill creation
// behind authMw.
func RegisterReference(r fiber.Router, authMw fiber.Handler, skillHandler *handler.SkillHandler, roleHandler *handler.RoleHandler) {
	if r == nil {
		return
	}

	if skillHandler != nil {
		skillHandler.RegisterRoutes(r)
		skillHandler.RegisterProtectedRoutes(r, authMw)
	}
	if roleHandler != nil {
		roleHandler.RegisterRoutes(r)
	}
}

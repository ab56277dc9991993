package routes

import (
	"ascend/internal/delivery/http/handler"
	"ascend/internal/delivery/http/middleware"
	"ascend/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers is everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	UserSkill      *handler.UserSkillHandler
	Achievement    *handler.AchievementHandler
	Skill          *handler.SkillHandler
	Role           *handler.RoleHandler
	Dashboard      *handler.DashboardHandler
	Recommendation *handler.RecommendationFunctionHandler
	WS             *ws.Handler
}

type Registry struct {
	h    Handlers
	auth *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{h: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerFunctions(app)
	r.registerRealtime(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h, r.auth)
}

func (r *Registry) registerFunctions(app *fiber.App) {
	if r.h.Recommendation != nil {
		r.h.Recommendation.RegisterRoutes(app.Group("/functions/v1"))
	}
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.h.WS != nil {
		app.Get("/ws", r.h.WS.Handle)
	}
}

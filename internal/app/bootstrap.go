package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ascend/internal/config"
	"ascend/internal/delivery/http/handler"
	"ascend/internal/delivery/http/middleware"
	"ascend/internal/delivery/http/routes"
	"ascend/internal/infrastructure/persistence/postgres"
	"ascend/internal/logger"
	"ascend/internal/pkg/jwt"
	"ascend/internal/repository"
	"ascend/internal/usecase"
	"ascend/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// New wires repositories, usecases and handlers on top of c. The returned
// hub must be started with Run before serving.
func New(ctx context.Context, c *Container) (*App, error) {
	cfg := c.Config
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	jwtSvc := jwt.NewHMACService(
		cfg.App.AppName,
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo, err := postgres.NewUserRepository(ctx, c.DB.SQLDB())
	if err != nil {
		return nil, fmt.Errorf("prepare user repository: %w", err)
	}
	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(c.DB)
	roleRepo := repository.NewPostgresRoleRepository(c.DB)
	achievementRepo := repository.NewPostgresAchievementRepository(c.DB)
	resourceRepo := repository.NewPostgresLearningResourceRepository(c.DB)

	hub := ws.NewHub(c.Logger)
	ttl := cfg.Redis.TTL

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo, newAvatarStorage(c.Storage), hub)
	skillUC := usecase.NewSkillUsecase(skillRepo, c.Cache, ttl, c.Logger)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, hub)
	roleUC := usecase.NewRoleUsecase(roleRepo, c.Cache, ttl, c.Logger)
	achievementUC := usecase.NewAchievementUsecase(achievementRepo, hub)
	gapUC := usecase.NewSkillGapUsecase(roleRepo, userSkillRepo, resourceRepo)
	recUC := usecase.NewRecommendationUsecase(c.LLM, c.Logger)

	registry := routes.NewRegistry(routes.Handlers{
		Health:         handler.NewHealthHandler(c.DB),
		Auth:           handler.NewAuthHandler(authUC),
		User:           handler.NewUserHandler(userUC),
		UserSkill:      handler.NewUserSkillHandler(userSkillUC),
		Achievement:    handler.NewAchievementHandler(achievementUC),
		Skill:          handler.NewSkillHandler(skillUC),
		Role:           handler.NewRoleHandler(roleUC),
		Dashboard:      handler.NewDashboardHandler(gapUC),
		Recommendation: handler.NewRecommendationFunctionHandler(recUC, jwtSvc, userRepo),
		WS:             ws.NewHandler(hub, jwtSvc, c.Logger),
	}, middleware.NewAuthMiddleware(jwtSvc))
	registry.Register(f)

	return &App{Fiber: f, Container: c, Hub: hub}, nil
}

// Bootstrap builds the logger and container, migrates, optionally seeds,
// starts the websocket hub and returns the ready app with its cleanup.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	log := logger.New(cfg.App.LogLevel, cfg.App.LogFormat).With("app", cfg.App.AppName, "env", cfg.App.Environment)

	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	migCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	if err := c.Migrate(migCtx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	if cfg.App.SeedOnStart {
		if err := c.Seed(migCtx); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
	}

	a, err := New(ctx, c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go a.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return a, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *slog.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

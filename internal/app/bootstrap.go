package app

import (
	"context"
	"fmt"
	"strings"

	"investor-service/internal/config"
	"investor-service/internal/delivery/http/handler"
	"investor-service/internal/delivery/http/middleware"
	"investor-service/internal/delivery/http/routes"
	"investor-service/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, logger *zap.Logger, registry *routes.Registry) *App {
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	registerGlobalMiddleware(f, logger)
	if registry != nil {
		registry.Register(f)
	}

	return &App{Fiber: f}
}

// Bootstrap builds the container and the HTTP app on top of it. The returned
// cleanup releases the database and cache connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(cfg, c.Logger, NewRegistry(c))
	return app, c.Close, nil
}

func NewRegistry(c *Container) *routes.Registry {
	investors := usecase.NewInvestorUsecase(c.Actors, c.Investors, c.Logger)
	details := usecase.NewStartupDetailUsecase(c.Actors, c.Startups, c.Results, c.Logger)
	connections := usecase.NewConnectionUsecase(c.Actors, c.Investors, c.Connections, c.Logger)
	meetings := usecase.NewMeetingUsecase(c.Actors, c.Investors, c.Connections, c.Meetings, c.Startups, c.Logger)
	matching := usecase.NewMatchingUsecase(c.Actors, c.Investors, c.Results, c.Startups, c.Logger)

	return &routes.Registry{
		Health:      handler.NewHealthHandler(c.DB, c.Cache),
		Investors:   handler.NewInvestorHandler(investors, details),
		Connections: handler.NewConnectionHandler(connections),
		Meetings:    handler.NewMeetingHandler(meetings),
		Matching:    handler.NewMatchingHandler(matching),
	}
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
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

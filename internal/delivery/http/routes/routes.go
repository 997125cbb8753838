package routes

import (
	"investor-service/internal/delivery/http/handler"
	"investor-service/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health      *handler.HealthHandler
	Investors   *handler.InvestorHandler
	Connections *handler.ConnectionHandler
	Meetings    *handler.MeetingHandler
	Matching    *handler.MatchingHandler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	authMw := middleware.NewAuthMiddleware()
	api := app.Group("/api", authMw.Middleware())

	if r.Investors != nil {
		r.Investors.RegisterRoutes(api.Group("/investors"))
	}
	if r.Connections != nil {
		r.Connections.RegisterRoutes(api.Group("/connections"))
	}
	if r.Meetings != nil {
		r.Meetings.RegisterRoutes(api.Group("/meetings"))
	}
	if r.Matching != nil {
		r.Matching.RegisterRoutes(api.Group("/matching"))
	}
}

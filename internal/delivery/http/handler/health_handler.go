package handler

import (
	"context"
	"time"

	"investor-service/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything whose liveness can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

type healthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

// Health reports 503 only when the database is down. A missing cache
// degrades reads but does not make the service unhealthy.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Database: probe(ctx, h.db), Cache: probe(ctx, h.cache)}
	if res.Database != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", res)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

package controller

import (
	"ai-workspace-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	store contract.RecordStore
}

func NewHealthController(store contract.RecordStore) IHealthController {
	return &healthController{store: store}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/healthz", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	if err := c.store.Ping(ctx.UserContext()); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"store":  c.store.Driver(),
		})
	}
	return ctx.JSON(fiber.Map{
		"status": "ok",
		"store":  c.store.Driver(),
	})
}

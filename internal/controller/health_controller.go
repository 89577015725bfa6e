package controller

import (
	"vc-copilot-be/internal/pkg/serverutils"
	"vc-copilot-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type healthController struct {
	db       *gorm.DB
	registry *session.Registry
}

func NewHealthController(db *gorm.DB, registry *session.Registry) IHealthController {
	return &healthController{
		db:       db,
		registry: registry,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("", c.Show)
}

func (c *healthController) Show(ctx *fiber.Ctx) error {
	dbStatus := "up"
	if sqlDB, err := c.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	return ctx.JSON(serverutils.SuccessResponse("Service healthy", fiber.Map{
		"database":        dbStatus,
		"active_sessions": c.registry.Len(),
	}))
}

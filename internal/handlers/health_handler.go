package handlers

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/threadline-store/backend/internal/config"
	"github.com/threadline-store/backend/internal/database"
	"github.com/threadline-store/backend/internal/dto"
	"gorm.io/gorm"
)

type HealthHandler struct {
	cfg       *config.Config
	db        *gorm.DB
	startedAt time.Time
}

func NewHealthHandler(cfg *config.Config, db *gorm.DB) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, startedAt: time.Now()}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.HealthData{
			Status:      "ok",
			Uptime:      time.Since(h.startedAt).Seconds(),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Environment: h.cfg.Env,
			Version:     runtime.Version(),
			DB:          dbStatus,
		},
	})
}

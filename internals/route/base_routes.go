package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	databases "biblioteka_backend/internals/databases"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bibliotēka backend up 🚀")
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		serverStatus := "healthy"
		httpStatus := fiber.StatusOK

		if err := databases.Ping(); err != nil {
			dbStatus = "disconnected"
			serverStatus = "unhealthy"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int64(time.Since(startTime).Seconds()),
		})
	})
}

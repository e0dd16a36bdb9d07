package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/features/library/stats/controller"
)

func StatsRoutes(api fiber.Router, db *gorm.DB) {
	statsCtrl := controller.NewStatsController(db)

	api.Get("/stats", statsCtrl.GetStats)
}

package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRoute "biblioteka_backend/internals/features/library/books/route"
	loanRoute "biblioteka_backend/internals/features/library/loans/route"
	statsRoute "biblioteka_backend/internals/features/library/stats/route"
	authRoute "biblioteka_backend/internals/features/users/auth/route"
	userRoute "biblioteka_backend/internals/features/users/user/route"
	middlewares "biblioteka_backend/internals/middlewares"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	app.Use(middlewares.GlobalRateLimiter())

	api := app.Group("/api")

	log.Println("[INFO] Mounting auth routes...")
	authRoute.AuthRoutes(api, db)

	log.Println("[INFO] Mounting book routes...")
	bookRoute.BookRoutes(api, db)

	log.Println("[INFO] Mounting loan routes...")
	loanRoute.LoanRoutes(api, db)

	log.Println("[INFO] Mounting user routes...")
	userRoute.UserRoutes(api, db)

	log.Println("[INFO] Mounting stats routes...")
	statsRoute.StatsRoutes(api, db)

	BaseRoutes(app, db)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/features/users/auth/controller"
	rateLimiter "biblioteka_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), authCtrl.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authCtrl.Login)
}

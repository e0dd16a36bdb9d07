package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/features/users/user/controller"
	middlewares "biblioteka_backend/internals/middlewares"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	userCtrl := controller.NewUserController(db)

	users := api.Group("/users", middlewares.AdminToken())
	users.Get("/", userCtrl.GetAllUsers)
	users.Post("/", userCtrl.CreateUser)
	users.Delete("/:id", userCtrl.DeleteUser)
}

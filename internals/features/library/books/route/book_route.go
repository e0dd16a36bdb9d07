package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/features/library/books/controller"
	middlewares "biblioteka_backend/internals/middlewares"
)

func BookRoutes(api fiber.Router, db *gorm.DB) {
	bookCtrl := controller.NewBookController(db)

	books := api.Group("/books")

	// === READ ===
	books.Get("/", bookCtrl.GetAllBooks)
	books.Get("/:id", bookCtrl.GetBookByID)

	// === WRITE (admin-token gated when configured) ===
	books.Post("/", middlewares.AdminToken(), bookCtrl.CreateBook)
	books.Put("/:id", middlewares.AdminToken(), bookCtrl.UpdateBook)
	books.Delete("/:id", middlewares.AdminToken(), bookCtrl.DeleteBook)

	// === CIRCULATION ===
	books.Post("/:id/reserve", bookCtrl.ReserveBook)
	books.Post("/:id/borrow", bookCtrl.BorrowBook)
	books.Post("/:id/return", bookCtrl.ReturnBook)
}

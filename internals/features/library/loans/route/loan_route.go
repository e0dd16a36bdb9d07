package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/features/library/loans/controller"
)

func LoanRoutes(api fiber.Router, db *gorm.DB) {
	loanCtrl := controller.NewLoanController(db)

	loans := api.Group("/loans")
	loans.Get("/", loanCtrl.GetAllLoans)
	loans.Post("/", loanCtrl.CreateLoan)
	loans.Post("/:id/return", loanCtrl.ReturnLoan)
}

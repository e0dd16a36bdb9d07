package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookModel "biblioteka_backend/internals/features/library/books/model"
	loanModel "biblioteka_backend/internals/features/library/loans/model"
	userModel "biblioteka_backend/internals/features/users/user/model"
	helper "biblioteka_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// TopBook is one row of the most-borrowed ranking.
type TopBook struct {
	Title string `gorm:"column:book_title" json:"title"`
	Loans int64  `gorm:"column:loan_count" json:"loans"`
}

// =============================
// 📊 Get Stats
// =============================
// Read-only aggregates over the whole catalog: counts, the top-5
// most-borrowed titles and the number of overdue active loans.
func (ctrl *StatsController) GetStats(c *fiber.Ctx) error {
	var (
		totalBooks, totalUsers  int64
		totalLoans, activeLoans int64
		overdueLoans            int64
	)

	if err := ctrl.DB.Model(&bookModel.BookModel{}).Count(&totalBooks).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	if err := ctrl.DB.Model(&userModel.UserModel{}).Count(&totalUsers).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	if err := ctrl.DB.Model(&loanModel.LoanModel{}).Count(&totalLoans).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	if err := ctrl.DB.Model(&loanModel.LoanModel{}).
		Where("loan_returned_at IS NULL").
		Count(&activeLoans).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	if err := ctrl.DB.Model(&loanModel.LoanModel{}).
		Where("loan_returned_at IS NULL AND loan_due_date < ?", time.Now()).
		Count(&overdueLoans).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}

	var top []TopBook
	if err := ctrl.DB.Table("loans").
		Select("books.book_title, COUNT(*) AS loan_count").
		Joins("JOIN books ON books.book_id = loans.loan_book_id").
		Group("books.book_id, books.book_title").
		Order("loan_count DESC").
		Limit(5).
		Scan(&top).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}

	return c.JSON(fiber.Map{
		"total_books":   totalBooks,
		"total_users":   totalUsers,
		"total_loans":   totalLoans,
		"active_loans":  activeLoans,
		"overdue_loans": overdueLoans,
		"top_borrowed":  top,
	})
}

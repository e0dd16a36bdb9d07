package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRepository "biblioteka_backend/internals/features/library/books/repository"
	"biblioteka_backend/internals/features/library/loans/dto"
	"biblioteka_backend/internals/features/library/loans/model"
	"biblioteka_backend/internals/features/library/loans/repository"
	helper "biblioteka_backend/internals/helpers"
)

var validateLoan = validator.New()

type LoanController struct {
	Repo  *repository.LoanRepository
	Books *bookRepository.BookRepository
}

func NewLoanController(db *gorm.DB) *LoanController {
	return &LoanController{
		Repo:  repository.NewLoanRepository(db),
		Books: bookRepository.NewBookRepository(db),
	}
}

// =============================
// 📄 Get All Loans
// =============================
func (ctrl *LoanController) GetAllLoans(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != model.StatusActive && status != model.StatusReturned {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid status filter")
	}

	rows, err := ctrl.Repo.List(status)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve loans")
	}

	now := time.Now()
	result := make([]dto.LoanDTO, 0, len(rows))
	for _, r := range rows {
		l := model.LoanModel{LoanDueDate: r.LoanDueDate, LoanReturnedAt: r.LoanReturnedAt}
		result = append(result, dto.LoanDTO{
			ID:         r.LoanID,
			BookID:     r.LoanBookID,
			BookTitle:  r.BookTitle,
			UserID:     r.LoanUserID,
			Username:   r.UserUsername,
			BorrowedAt: r.LoanBorrowedAt,
			DueDate:    r.LoanDueDate,
			ReturnedAt: r.LoanReturnedAt,
			Status:     l.Status(),
			Overdue:    l.Overdue(now),
		})
	}
	return c.JSON(result)
}

// =============================
// ➕ Create Loan (borrow alias)
// =============================
func (ctrl *LoanController) CreateLoan(c *fiber.Ctx) error {
	var body dto.CreateLoanRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateLoan.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	loan, err := ctrl.Books.Borrow(body.BookID, body.Username)
	if err != nil {
		return loanError(c, err)
	}
	return helper.SuccessWithData(c, fiber.StatusCreated, "Loan created", "loan", loan)
}

// =============================
// 📗 Return Loan by id
// =============================
func (ctrl *LoanController) ReturnLoan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid loan id")
	}

	if err := ctrl.Books.ReturnLoan(uint(id)); err != nil {
		return loanError(c, err)
	}
	return helper.Success(c, "Loan returned")
}

func loanError(c *fiber.Ctx, err error) error {
	switch err {
	case bookRepository.ErrBookNotFound:
		return helper.Error(c, fiber.StatusNotFound, "Book not found")
	case bookRepository.ErrUserNotFound:
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	case bookRepository.ErrLoanNotFound:
		return helper.Error(c, fiber.StatusNotFound, "Loan not found")
	case bookRepository.ErrCannotBorrow:
		return helper.Error(c, fiber.StatusBadRequest, "Cannot borrow this book")
	case bookRepository.ErrCannotReturn:
		return helper.Error(c, fiber.StatusBadRequest, "Loan already returned")
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Operation failed")
	}
}

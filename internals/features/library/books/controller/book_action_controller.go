package controller

import (
	"github.com/gofiber/fiber/v2"

	"biblioteka_backend/internals/features/library/books/dto"
	"biblioteka_backend/internals/features/library/books/repository"
	helper "biblioteka_backend/internals/helpers"
)

// =============================
// 📌 Reserve Book
// =============================
func (ctrl *BookController) ReserveBook(c *fiber.Ctx) error {
	id, body, ok, resp := parseAction(c)
	if !ok {
		return resp
	}

	if err := ctrl.Repo.Reserve(id, body.Username); err != nil {
		return circulationError(c, err)
	}
	return helper.Success(c, "Book reserved")
}

// =============================
// 📕 Borrow Book
// =============================
func (ctrl *BookController) BorrowBook(c *fiber.Ctx) error {
	id, body, ok, resp := parseAction(c)
	if !ok {
		return resp
	}

	loan, err := ctrl.Repo.Borrow(id, body.Username)
	if err != nil {
		return circulationError(c, err)
	}
	return helper.SuccessWithData(c, fiber.StatusOK, "Book borrowed", "loan", loan)
}

// =============================
// 📗 Return Book
// =============================
func (ctrl *BookController) ReturnBook(c *fiber.Ctx) error {
	id, body, ok, resp := parseAction(c)
	if !ok {
		return resp
	}

	if err := ctrl.Repo.Return(id, body.Username); err != nil {
		return circulationError(c, err)
	}
	return helper.Success(c, "Book returned")
}

// parseAction reads the book id and the acting username. When ok is false
// the 400 response has already been rendered and resp must be returned as-is.
func parseAction(c *fiber.Ctx) (id uint, body *dto.BookActionRequest, ok bool, resp error) {
	n, err := c.ParamsInt("id")
	if err != nil || n <= 0 {
		return 0, nil, false, helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}
	var req dto.BookActionRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, nil, false, helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" {
		return 0, nil, false, helper.Error(c, fiber.StatusBadRequest, "Username required")
	}
	return uint(n), &req, true, nil
}

// circulationError maps state machine failures onto the wire contract:
// unknown references are 404, refused transitions are 400.
func circulationError(c *fiber.Ctx, err error) error {
	switch err {
	case repository.ErrBookNotFound:
		return helper.Error(c, fiber.StatusNotFound, "Book not found")
	case repository.ErrUserNotFound:
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	case repository.ErrLoanNotFound:
		return helper.Error(c, fiber.StatusNotFound, "Loan not found")
	case repository.ErrBookNotAvailable:
		return helper.Error(c, fiber.StatusBadRequest, "Book is not available")
	case repository.ErrCannotBorrow:
		return helper.Error(c, fiber.StatusBadRequest, "Cannot borrow this book")
	case repository.ErrCannotReturn:
		return helper.Error(c, fiber.StatusBadRequest, "Cannot return this book")
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Operation failed")
	}
}

package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/features/library/books/dto"
	"biblioteka_backend/internals/features/library/books/model"
	"biblioteka_backend/internals/features/library/books/repository"
	helper "biblioteka_backend/internals/helpers"
)

var validateBook = validator.New()

type BookController struct {
	Repo *repository.BookRepository
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{Repo: repository.NewBookRepository(db)}
}

// =============================
// 📄 Get All Books
// =============================
func (ctrl *BookController) GetAllBooks(c *fiber.Ctx) error {
	books, err := ctrl.Repo.List(c.Query("search"), c.Query("genre"))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve books")
	}
	holders, err := ctrl.Repo.HolderNames(books)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve books")
	}

	result := make([]dto.BookDTO, 0, len(books))
	for _, b := range books {
		name := ""
		if b.BookReservedBy != nil {
			name = holders[*b.BookReservedBy]
		}
		result = append(result, dto.ToBookDTO(b, name))
	}
	return c.JSON(result)
}

// =============================
// 🔍 Get Book By ID
// =============================
func (ctrl *BookController) GetBookByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	book, err := ctrl.Repo.GetByID(uint(id))
	if err != nil {
		if err == repository.ErrBookNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve book")
	}

	holders, err := ctrl.Repo.HolderNames([]model.BookModel{*book})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve book")
	}
	name := ""
	if book.BookReservedBy != nil {
		name = holders[*book.BookReservedBy]
	}
	return c.JSON(dto.ToBookDTO(*book, name))
}

// =============================
// ➕ Create Book
// =============================
func (ctrl *BookController) CreateBook(c *fiber.Ctx) error {
	var body dto.CreateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Title = strings.TrimSpace(body.Title)
	body.Author = strings.TrimSpace(body.Author)
	if err := validateBook.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	copies := 1
	if body.Copies != nil {
		copies = *body.Copies
	}

	book := model.BookModel{
		BookTitle:           body.Title,
		BookAuthor:          body.Author,
		BookISBN:            normalizeISBN(body.ISBN),
		BookGenre:           strings.TrimSpace(body.Genre),
		BookYear:            body.Year,
		BookStatus:          model.StatusAvailable,
		BookTotalCopies:     copies,
		BookAvailableCopies: copies,
		BookImage:           helper.NormalizeCover(helper.DecodeCoverImage(body.Image)),
	}

	if err := ctrl.Repo.Create(&book); err != nil {
		if err == repository.ErrISBNTaken {
			return helper.Error(c, fiber.StatusConflict, "ISBN already registered")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create book")
	}

	return helper.SuccessWithData(c, fiber.StatusCreated, "Book created", "book", dto.ToBookDTO(book, ""))
}

// =============================
// 🔄 Update Book
// =============================
func (ctrl *BookController) UpdateBook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	var body dto.UpdateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Title = strings.TrimSpace(body.Title)
	body.Author = strings.TrimSpace(body.Author)
	if err := validateBook.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	book, err := ctrl.Repo.GetByID(uint(id))
	if err != nil {
		if err == repository.ErrBookNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve book")
	}

	book.BookTitle = body.Title
	book.BookAuthor = body.Author
	book.BookISBN = normalizeISBN(body.ISBN)
	book.BookGenre = strings.TrimSpace(body.Genre)
	book.BookYear = body.Year
	// cover replaced only when a new payload actually decodes
	if raw := helper.DecodeCoverImage(body.Image); raw != nil {
		book.BookImage = helper.NormalizeCover(raw)
	}

	if err := ctrl.Repo.Update(book); err != nil {
		if err == repository.ErrISBNTaken {
			return helper.Error(c, fiber.StatusConflict, "ISBN already registered")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update book")
	}

	return helper.SuccessWithData(c, fiber.StatusOK, "Book updated", "book", dto.ToBookDTO(*book, ""))
}

// =============================
// 🗑️ Delete Book
// =============================
func (ctrl *BookController) DeleteBook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid book id")
	}

	switch err := ctrl.Repo.Delete(uint(id)); err {
	case nil:
		return helper.Success(c, "Book deleted")
	case repository.ErrBookNotFound:
		return helper.Error(c, fiber.StatusNotFound, "Book not found")
	case repository.ErrActiveLoan:
		return helper.Error(c, fiber.StatusConflict, "Book has an active loan")
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete book")
	}
}

func normalizeISBN(isbn string) *string {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil
	}
	return &isbn
}

package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	database "biblioteka_backend/internals/databases"
	"biblioteka_backend/internals/features/library/books/model"
	loanModel "biblioteka_backend/internals/features/library/loans/model"
	userModel "biblioteka_backend/internals/features/users/user/model"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrISBNTaken        = errors.New("isbn already registered")
	ErrBookNotAvailable = errors.New("book is not available")
	ErrCannotBorrow     = errors.New("cannot borrow this book")
	ErrCannotReturn     = errors.New("cannot return this book")
	ErrActiveLoan       = errors.New("book has an active loan")
)

// BookRepository owns the catalog rows and the circulation state machine.
// Every transition runs inside one transaction with conditional updates
// guarded by RowsAffected, so two concurrent reserve/borrow calls cannot
// both claim the same copy.
type BookRepository struct {
	DB *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{DB: db}
}

// =============================
// 📄 Listing & lookup
// =============================

// List returns all books, newest first. search is a case-insensitive
// substring match on title/author/ISBN, genre an exact match.
func (r *BookRepository) List(search, genre string) ([]model.BookModel, error) {
	q := r.DB.Model(&model.BookModel{})
	if s := strings.ToLower(strings.TrimSpace(search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(book_title) LIKE ? OR LOWER(book_author) LIKE ? OR LOWER(COALESCE(book_isbn, '')) LIKE ?",
			like, like, like,
		)
	}
	if genre = strings.TrimSpace(genre); genre != "" {
		q = q.Where("book_genre = ?", genre)
	}

	var books []model.BookModel
	if err := q.Order("book_created_at DESC, book_id DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// HolderNames resolves the usernames of everyone currently holding one of
// the given books, keyed by user id.
func (r *BookRepository) HolderNames(books []model.BookModel) (map[uint]string, error) {
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		if b.BookReservedBy != nil {
			ids = append(ids, *b.BookReservedBy)
		}
	}
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []userModel.UserModel
	if err := r.DB.Select("user_id", "user_username").Find(&users, "user_id IN ?", ids).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.UserID] = u.UserUsername
	}
	return names, nil
}

func (r *BookRepository) GetByID(id uint) (*model.BookModel, error) {
	var b model.BookModel
	if err := r.DB.First(&b, "book_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

// =============================
// ➕ Create / 🔄 Update / 🗑️ Delete
// =============================

func (r *BookRepository) Create(b *model.BookModel) error {
	if b.BookISBN != nil {
		var n int64
		if err := r.DB.Model(&model.BookModel{}).Where("book_isbn = ?", *b.BookISBN).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrISBNTaken
		}
	}
	if err := r.DB.Create(b).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return ErrISBNTaken
		}
		return err
	}
	return nil
}

// Update rewrites the descriptive fields only. Circulation columns
// (status, holder, copy counters) are owned by the state machine and
// never written here, so an edit cannot undo a concurrent borrow.
// b is reloaded with the live row on success.
func (r *BookRepository) Update(b *model.BookModel) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if b.BookISBN != nil {
			var n int64
			if err := tx.Model(&model.BookModel{}).
				Where("book_isbn = ? AND book_id <> ?", *b.BookISBN, b.BookID).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrISBNTaken
			}
		}

		res := tx.Model(&model.BookModel{}).
			Where("book_id = ?", b.BookID).
			Updates(map[string]interface{}{
				"book_title":  b.BookTitle,
				"book_author": b.BookAuthor,
				"book_isbn":   b.BookISBN,
				"book_genre":  b.BookGenre,
				"book_year":   b.BookYear,
				"book_image":  b.BookImage,
			})
		if res.Error != nil {
			if database.IsDuplicateKey(res.Error) {
				return ErrISBNTaken
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookNotFound
		}
		return tx.First(b, "book_id = ?", b.BookID).Error
	})
}

// Delete removes a book and its loan history. Blocked while a loan is open.
func (r *BookRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := ensureBook(tx, id); err != nil {
			return err
		}
		var open int64
		if err := tx.Model(&loanModel.LoanModel{}).
			Where("loan_book_id = ? AND loan_returned_at IS NULL", id).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrActiveLoan
		}
		if err := tx.Delete(&loanModel.LoanModel{}, "loan_book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.BookModel{}, "book_id = ?", id).Error
	})
}

// =============================
// 🔁 Circulation state machine
// =============================

// Reserve puts a hold on an available book for the given user.
func (r *BookRepository) Reserve(bookID uint, username string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, username)
		if err != nil {
			return err
		}
		if err := ensureBook(tx, bookID); err != nil {
			return err
		}

		res := tx.Model(&model.BookModel{}).
			Where("book_id = ? AND book_status = ? AND book_available_copies > 0", bookID, model.StatusAvailable).
			Updates(map[string]interface{}{
				"book_status":      model.StatusReserved,
				"book_reserved_by": user.UserID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookNotAvailable
		}
		return nil
	})
}

// Borrow takes a copy off the shelf, either directly from the available
// state or by claiming the caller's own reservation. Creates the loan row
// with the fixed 30-day due date.
func (r *BookRepository) Borrow(bookID uint, username string) (*loanModel.LoanModel, error) {
	var created *loanModel.LoanModel
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, username)
		if err != nil {
			return err
		}
		if err := ensureBook(tx, bookID); err != nil {
			return err
		}

		// one open loan per (book, user)
		var open int64
		if err := tx.Model(&loanModel.LoanModel{}).
			Where("loan_book_id = ? AND loan_user_id = ? AND loan_returned_at IS NULL", bookID, user.UserID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrCannotBorrow
		}

		// direct borrow from the shelf
		res := tx.Model(&model.BookModel{}).
			Where("book_id = ? AND book_status = ? AND book_available_copies > 0", bookID, model.StatusAvailable).
			UpdateColumn("book_available_copies", gorm.Expr("book_available_copies - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// or claim the caller's own reservation
			res = tx.Model(&model.BookModel{}).
				Where("book_id = ? AND book_status = ? AND book_reserved_by = ? AND book_available_copies > 0",
					bookID, model.StatusReserved, user.UserID).
				UpdateColumn("book_available_copies", gorm.Expr("book_available_copies - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCannotBorrow
			}
		}

		// settle status/holder from what is left on the shelf
		var b model.BookModel
		if err := tx.First(&b, "book_id = ?", bookID).Error; err != nil {
			return err
		}
		settle := map[string]interface{}{
			"book_status":      model.StatusAvailable,
			"book_reserved_by": nil,
		}
		if b.BookAvailableCopies <= 0 {
			settle["book_status"] = model.StatusBorrowed
			settle["book_reserved_by"] = user.UserID
		}
		if err := tx.Model(&model.BookModel{}).Where("book_id = ?", bookID).Updates(settle).Error; err != nil {
			return err
		}

		now := time.Now()
		loan := loanModel.LoanModel{
			LoanBookID:     bookID,
			LoanUserID:     user.UserID,
			LoanBorrowedAt: now,
			LoanDueDate:    now.AddDate(0, 0, loanModel.LoanPeriodDays),
		}
		if err := tx.Create(&loan).Error; err != nil {
			return err
		}
		created = &loan
		return nil
	})
	return created, err
}

// Return closes the caller's open loan on the book and puts the copy back.
func (r *BookRepository) Return(bookID uint, username string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		user, err := findUser(tx, username)
		if err != nil {
			return err
		}
		if err := ensureBook(tx, bookID); err != nil {
			return err
		}

		var loan loanModel.LoanModel
		err = tx.Where("loan_book_id = ? AND loan_user_id = ? AND loan_returned_at IS NULL", bookID, user.UserID).
			Order("loan_borrowed_at DESC, loan_id DESC").
			First(&loan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCannotReturn
		}
		if err != nil {
			return err
		}
		return settleReturn(tx, &loan)
	})
}

// ReturnLoan closes a loan addressed by its own id (the /loans surface).
func (r *BookRepository) ReturnLoan(loanID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var loan loanModel.LoanModel
		err := tx.First(&loan, "loan_id = ?", loanID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLoanNotFound
		}
		if err != nil {
			return err
		}
		return settleReturn(tx, &loan)
	})
}

// settleReturn stamps the loan and restores one copy to the shelf.
// The conditional updates keep a double return a no-op that reports
// ErrCannotReturn instead of corrupting the counters.
func settleReturn(tx *gorm.DB, loan *loanModel.LoanModel) error {
	res := tx.Model(&loanModel.LoanModel{}).
		Where("loan_id = ? AND loan_returned_at IS NULL", loan.LoanID).
		Update("loan_returned_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCannotReturn
	}

	res = tx.Model(&model.BookModel{}).
		Where("book_id = ? AND book_available_copies < book_total_copies", loan.LoanBookID).
		UpdateColumn("book_available_copies", gorm.Expr("book_available_copies + 1"))
	if res.Error != nil {
		return res.Error
	}

	// the holder is cleared only when the title was fully out, so a live
	// reservation by another member survives the return untouched
	res = tx.Model(&model.BookModel{}).
		Where("book_id = ? AND book_status = ?", loan.LoanBookID, model.StatusBorrowed).
		Updates(map[string]interface{}{
			"book_status":      model.StatusAvailable,
			"book_reserved_by": nil,
		})
	return res.Error
}

// =============================
// internal
// =============================

func findUser(tx *gorm.DB, username string) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := tx.First(&u, "user_username = ?", strings.TrimSpace(username)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func ensureBook(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&model.BookModel{}).Where("book_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound
	}
	return nil
}

package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"biblioteka_backend/internals/features/library/loans/model"
)

var ErrLoanNotFound = errors.New("loan not found")

type LoanRepository struct {
	DB *gorm.DB
}

func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{DB: db}
}

// LoanRow is a loan joined with its book and user context for listings.
type LoanRow struct {
	LoanID         uint       `gorm:"column:loan_id"`
	LoanBookID     uint       `gorm:"column:loan_book_id"`
	LoanUserID     uint       `gorm:"column:loan_user_id"`
	LoanBorrowedAt time.Time  `gorm:"column:loan_borrowed_at"`
	LoanDueDate    time.Time  `gorm:"column:loan_due_date"`
	LoanReturnedAt *time.Time `gorm:"column:loan_returned_at"`
	BookTitle      string     `gorm:"column:book_title"`
	UserUsername   string     `gorm:"column:user_username"`
}

// List returns loans newest first, optionally narrowed to "active" or
// "returned". An empty status means everything.
func (r *LoanRepository) List(status string) ([]LoanRow, error) {
	q := r.DB.Table("loans").
		Select("loans.*, books.book_title, users.user_username").
		Joins("JOIN books ON books.book_id = loans.loan_book_id").
		Joins("JOIN users ON users.user_id = loans.loan_user_id")

	switch status {
	case model.StatusActive:
		q = q.Where("loan_returned_at IS NULL")
	case model.StatusReturned:
		q = q.Where("loan_returned_at IS NOT NULL")
	}

	var rows []LoanRow
	if err := q.Order("loan_borrowed_at DESC, loan_id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LoanRepository) GetByID(id uint) (*model.LoanModel, error) {
	var l model.LoanModel
	if err := r.DB.First(&l, "loan_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return &l, nil
}

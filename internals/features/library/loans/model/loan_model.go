package model

import "time"

// LoanPeriodDays is the fixed lending period. Not configurable.
const LoanPeriodDays = 30

const (
	StatusActive   = "active"
	StatusReturned = "returned"
)

type LoanModel struct {
	LoanID         uint       `gorm:"column:loan_id;primaryKey;autoIncrement" json:"loan_id"`
	LoanBookID     uint       `gorm:"column:loan_book_id;not null;index" json:"loan_book_id"`
	LoanUserID     uint       `gorm:"column:loan_user_id;not null;index" json:"loan_user_id"`
	LoanBorrowedAt time.Time  `gorm:"column:loan_borrowed_at;autoCreateTime" json:"loan_borrowed_at"`
	LoanDueDate    time.Time  `gorm:"column:loan_due_date;not null" json:"loan_due_date"`
	LoanReturnedAt *time.Time `gorm:"column:loan_returned_at" json:"loan_returned_at,omitempty"`
}

// TableName sets the table name for LoanModel
func (LoanModel) TableName() string {
	return "loans"
}

// Status derives the loan state: a loan is active until returned_at is set,
// and terminal afterwards.
func (l *LoanModel) Status() string {
	if l.LoanReturnedAt == nil {
		return StatusActive
	}
	return StatusReturned
}

// Overdue reports whether an active loan is past its due date.
func (l *LoanModel) Overdue(now time.Time) bool {
	return l.LoanReturnedAt == nil && l.LoanDueDate.Before(now)
}

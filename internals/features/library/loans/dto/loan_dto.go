package dto

import "time"

// ============================
// Response DTO
// ============================

type LoanDTO struct {
	ID         uint       `json:"id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	UserID     uint       `json:"user_id"`
	Username   string     `json:"username"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     string     `json:"status"`
	Overdue    bool       `json:"overdue"`
}

// ============================
// Request DTO
// ============================

// CreateLoanRequest is the /loans alias of a borrow action.
type CreateLoanRequest struct {
	BookID   uint   `json:"book_id" validate:"required"`
	Username string `json:"username" validate:"required"`
}

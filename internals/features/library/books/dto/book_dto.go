package dto

import (
	"time"

	"biblioteka_backend/internals/features/library/books/model"
	helper "biblioteka_backend/internals/helpers"
)

// ============================
// Response DTO
// ============================

type BookDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn,omitempty"`
	Genre           string    `json:"genre,omitempty"`
	Year            int       `json:"year,omitempty"`
	Status          string    `json:"status"`
	ReservedByID    *uint     `json:"reserved_by_id,omitempty"`
	ReservedBy      string    `json:"reserved_by,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	Image           string    `json:"image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ============================
// Create & Update Request DTO
// ============================

type CreateBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn"`
	Genre  string `json:"genre"`
	Year   int    `json:"year"`
	Copies *int   `json:"copies" validate:"omitempty,min=0"`
	Image  string `json:"image"` // base64 or data URL
}

type UpdateBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn"`
	Genre  string `json:"genre"`
	Year   int    `json:"year"`
	Image  string `json:"image"` // only replaces the cover when non-empty
}

type BookActionRequest struct {
	Username string `json:"username" validate:"required"`
}

// ============================
// Converter
// ============================

// ToBookDTO renders a book row for the wire; holderName is the username of
// the current reserver/borrower, empty when the book is free.
func ToBookDTO(m model.BookModel, holderName string) BookDTO {
	dto := BookDTO{
		ID:              m.BookID,
		Title:           m.BookTitle,
		Author:          m.BookAuthor,
		Genre:           m.BookGenre,
		Year:            m.BookYear,
		Status:          m.BookStatus,
		ReservedByID:    m.BookReservedBy,
		ReservedBy:      holderName,
		TotalCopies:     m.BookTotalCopies,
		AvailableCopies: m.BookAvailableCopies,
		Image:           helper.EncodeCoverDataURL(m.BookImage),
		CreatedAt:       m.BookCreatedAt,
	}
	if m.BookISBN != nil {
		dto.ISBN = *m.BookISBN
	}
	return dto
}

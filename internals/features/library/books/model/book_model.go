package model

import "time"

// Book lifecycle states. With a single copy the status walks
// available → reserved → borrowed → available; with more copies the
// status only flips to borrowed once the last copy is out.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusBorrowed  = "borrowed"
)

type BookModel struct {
	BookID              uint      `gorm:"column:book_id;primaryKey;autoIncrement" json:"book_id"`
	BookTitle           string    `gorm:"column:book_title;type:varchar(255);not null" json:"book_title"`
	BookAuthor          string    `gorm:"column:book_author;type:varchar(255);not null" json:"book_author"`
	BookISBN            *string   `gorm:"column:book_isbn;type:varchar(32);uniqueIndex" json:"book_isbn,omitempty"`
	BookGenre           string    `gorm:"column:book_genre;type:varchar(100)" json:"book_genre,omitempty"`
	BookYear            int       `gorm:"column:book_year" json:"book_year,omitempty"`
	BookStatus          string    `gorm:"column:book_status;type:varchar(20);not null;default:'available'" json:"book_status"`
	BookReservedBy      *uint     `gorm:"column:book_reserved_by;index" json:"book_reserved_by,omitempty"`
	BookTotalCopies     int       `gorm:"column:book_total_copies;not null;default:1" json:"book_total_copies"`
	BookAvailableCopies int       `gorm:"column:book_available_copies;not null;default:1" json:"book_available_copies"`
	BookImage           []byte    `gorm:"column:book_image" json:"-"`
	BookCreatedAt       time.Time `gorm:"column:book_created_at;autoCreateTime" json:"book_created_at"`
	BookUpdatedAt       time.Time `gorm:"column:book_updated_at;autoUpdateTime" json:"book_updated_at"`
}

// TableName sets the table name for BookModel
func (BookModel) TableName() string {
	return "books"
}

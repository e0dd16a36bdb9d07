package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	bookModel "biblioteka_backend/internals/features/library/books/model"
	bookRepository "biblioteka_backend/internals/features/library/books/repository"
	"biblioteka_backend/internals/features/library/loans/model"
	userModel "biblioteka_backend/internals/features/users/user/model"
)

func newLoanApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&userModel.UserModel{}, &bookModel.BookModel{}, &model.LoanModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	ctrl := NewLoanController(db)
	loans := app.Group("/api/loans")
	loans.Get("/", ctrl.GetAllLoans)
	loans.Post("/", ctrl.CreateLoan)
	loans.Post("/:id/return", ctrl.ReturnLoan)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func seedCatalog(t *testing.T, db *gorm.DB) *bookModel.BookModel {
	t.Helper()
	u := userModel.UserModel{UserUsername: "alice", UserPassword: "x", UserRole: "user"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	b := bookModel.BookModel{
		BookTitle: "1984", BookAuthor: "Orwell",
		BookStatus: bookModel.StatusAvailable, BookTotalCopies: 1, BookAvailableCopies: 1,
	}
	if err := bookRepository.NewBookRepository(db).Create(&b); err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return &b
}

func TestCreateLoanAndList(t *testing.T) {
	app, db := newLoanApp(t)
	book := seedCatalog(t, db)

	resp, raw := call(t, app, http.MethodPost, "/api/loans/",
		`{"book_id":`+strconv.Itoa(int(book.BookID))+`,"username":"alice"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %d: %s", resp.StatusCode, raw)
	}

	resp, raw = call(t, app, http.MethodGet, "/api/loans/?status=active", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list = %d", resp.StatusCode)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %v", list)
	}
	row := list[0]
	if row["book_title"] != "1984" || row["username"] != "alice" || row["status"] != model.StatusActive {
		t.Fatalf("row = %v", row)
	}
	if row["overdue"] != false {
		t.Fatalf("fresh loan marked overdue: %v", row)
	}

	// the book itself follows the loan
	b, err := bookRepository.NewBookRepository(db).GetByID(book.BookID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if b.BookStatus != bookModel.StatusBorrowed {
		t.Fatalf("book status = %s, want borrowed", b.BookStatus)
	}
}

func TestCreateLoanErrors(t *testing.T) {
	app, db := newLoanApp(t)
	book := seedCatalog(t, db)

	resp, _ := call(t, app, http.MethodPost, "/api/loans/", `{"username":"alice"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing book_id = %d", resp.StatusCode)
	}
	resp, _ = call(t, app, http.MethodPost, "/api/loans/", `{"book_id":9999,"username":"alice"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown book = %d", resp.StatusCode)
	}
	resp, _ = call(t, app, http.MethodPost, "/api/loans/",
		`{"book_id":`+strconv.Itoa(int(book.BookID))+`,"username":"ghost"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown user = %d", resp.StatusCode)
	}
}

func TestReturnLoanByID(t *testing.T) {
	app, db := newLoanApp(t)
	book := seedCatalog(t, db)

	loan, err := bookRepository.NewBookRepository(db).Borrow(book.BookID, "alice")
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	path := "/api/loans/" + strconv.Itoa(int(loan.LoanID)) + "/return"

	resp, _ := call(t, app, http.MethodPost, path, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("return = %d", resp.StatusCode)
	}

	resp, raw := call(t, app, http.MethodPost, path, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("second return = %d", resp.StatusCode)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if body["error"] != "Loan already returned" {
		t.Fatalf("error = %v", body["error"])
	}

	resp, _ = call(t, app, http.MethodPost, "/api/loans/9999/return", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown loan = %d", resp.StatusCode)
	}
}

func TestListRejectsBadStatus(t *testing.T) {
	app, _ := newLoanApp(t)

	resp, _ := call(t, app, http.MethodGet, "/api/loans/?status=bogus", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad filter = %d", resp.StatusCode)
	}
}

func TestOverdueFlag(t *testing.T) {
	app, db := newLoanApp(t)
	book := seedCatalog(t, db)

	loan, err := bookRepository.NewBookRepository(db).Borrow(book.BookID, "alice")
	if err != nil {
		t.Fatalf("borrow: %v", err)
	}
	if err := db.Model(&model.LoanModel{}).
		Where("loan_id = ?", loan.LoanID).
		Update("loan_due_date", time.Now().AddDate(0, 0, -3)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	_, raw := call(t, app, http.MethodGet, "/api/loans/", "")
	var list []map[string]interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if len(list) != 1 || list[0]["overdue"] != true {
		t.Fatalf("list = %v", list)
	}
}

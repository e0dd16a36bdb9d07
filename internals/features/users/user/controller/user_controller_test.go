package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	bookModel "biblioteka_backend/internals/features/library/books/model"
	bookRepository "biblioteka_backend/internals/features/library/books/repository"
	loanModel "biblioteka_backend/internals/features/library/loans/model"
	"biblioteka_backend/internals/features/users/user/model"
)

func newUserApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	if err := db.AutoMigrate(&model.UserModel{}, &bookModel.BookModel{}, &loanModel.LoanModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	app := fiber.New()
	ctrl := NewUserController(db)
	users := app.Group("/api/users")
	users.Get("/", ctrl.GetAllUsers)
	users.Post("/", ctrl.CreateUser)
	users.Delete("/:id", ctrl.DeleteUser)
	return app, db
}

func request(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
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

func TestCreateAndListUsers(t *testing.T) {
	app, _ := newUserApp(t)

	resp, raw := request(t, app, http.MethodPost, "/api/users/", `{"username":"alice","email":"alice@example.com"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create = %d: %s", resp.StatusCode, raw)
	}
	var created struct {
		User map[string]interface{} `json:"user"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	if created.User["username"] != "alice" || created.User["email"] != "alice@example.com" {
		t.Fatalf("created user = %v", created.User)
	}

	resp, raw = request(t, app, http.MethodGet, "/api/users/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list = %d", resp.StatusCode)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("decode list %q: %v", raw, err)
	}
	if len(list) != 1 || list[0]["username"] != "alice" {
		t.Fatalf("list = %v", list)
	}
	if _, leaked := list[0]["password"]; leaked {
		t.Fatalf("password leaked: %v", list[0])
	}
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	app, _ := newUserApp(t)

	request(t, app, http.MethodPost, "/api/users/", `{"username":"alice"}`)
	resp, raw := request(t, app, http.MethodPost, "/api/users/", `{"username":"alice"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate = %d: %s", resp.StatusCode, raw)
	}
}

func TestCreateUserValidation(t *testing.T) {
	app, _ := newUserApp(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing username", `{"email":"a@example.com"}`},
		{"bad email", `{"username":"alice","email":"not-an-email"}`},
		{"short password", `{"username":"alice","password":"ab"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := request(t, app, http.MethodPost, "/api/users/", tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", resp.StatusCode, raw)
			}
		})
	}
}

func TestDeleteUser(t *testing.T) {
	app, db := newUserApp(t)
	books := bookRepository.NewBookRepository(db)

	u := model.UserModel{UserUsername: "alice", UserPassword: "x", UserRole: "user"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	b := bookModel.BookModel{
		BookTitle: "1984", BookAuthor: "Orwell",
		BookStatus: bookModel.StatusAvailable, BookTotalCopies: 1, BookAvailableCopies: 1,
	}
	if err := books.Create(&b); err != nil {
		t.Fatalf("seed book: %v", err)
	}
	if _, err := books.Borrow(b.BookID, "alice"); err != nil {
		t.Fatalf("borrow: %v", err)
	}

	path := "/api/users/" + strconv.Itoa(int(u.UserID))

	resp, raw := request(t, app, http.MethodDelete, path, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete with open loan = %d: %s", resp.StatusCode, raw)
	}

	if err := books.Return(b.BookID, "alice"); err != nil {
		t.Fatalf("return: %v", err)
	}
	resp, _ = request(t, app, http.MethodDelete, path, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete = %d", resp.StatusCode)
	}

	// account and its loan history are gone
	var users, loans int64
	if err := db.Model(&model.UserModel{}).Count(&users).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if err := db.Model(&loanModel.LoanModel{}).Where("loan_user_id = ?", u.UserID).Count(&loans).Error; err != nil {
		t.Fatalf("count loans: %v", err)
	}
	if users != 0 || loans != 0 {
		t.Fatalf("left behind: users=%d loans=%d", users, loans)
	}

	resp, _ = request(t, app, http.MethodDelete, path, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing = %d", resp.StatusCode)
	}
}

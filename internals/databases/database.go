package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"biblioteka_backend/internals/configs"
	bookModel "biblioteka_backend/internals/features/library/books/model"
	loanModel "biblioteka_backend/internals/features/library/loans/model"
	userModel "biblioteka_backend/internals/features/users/user/model"
)

var DB *gorm.DB

// ConnectDB opens the relational store. DB_DRIVER picks the backend:
// "postgres" (default) or "sqlite". Both run through the same GORM models,
// so the rest of the service never cares which one is underneath.
func ConnectDB() {
	driver := configs.GetEnv("DB_DRIVER", "postgres")

	var dial gorm.Dialector
	switch driver {
	case "sqlite":
		path := configs.GetEnv("DB_PATH", "biblioteka.db")
		log.Printf("🔌 Connecting to SQLite (%s)...", path)
		dial = sqlite.Open(path)
	default:
		dsn := configs.GetEnv("DATABASE_URL")
		if dsn == "" {
			sslmode := configs.GetEnv("DB_SSLMODE", "disable")
			dsn = fmt.Sprintf(
				"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=biblioteka&options=-c statement_timeout=3000",
				os.Getenv("DB_USER"),
				os.Getenv("DB_PASSWORD"),
				configs.GetEnv("DB_HOST", "localhost"),
				configs.GetEnv("DB_PORT", "5432"),
				configs.GetEnv("DB_NAME", "biblioteka"),
				sslmode,
			)
		}
		log.Println("🔌 Connecting to PostgreSQL...")
		dial = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // 👍 plays well with PgBouncer (transaction pooling)
		})
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate brings the schema up to date: users, books, loans.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&bookModel.BookModel{},
		&loanModel.LoanModel{},
	); err != nil {
		log.Fatalf("❌ migrate failed: %v", err)
	}
	log.Println("✅ schema up to date.")
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// Covers both the translated gorm error and raw driver messages, so it
// works on connections opened without TranslateError (tests).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique")
}

package helper

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen matches the registration contract.
const MinPasswordLen = 3

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidateRegisterInput enforces the registration rules: non-empty username,
// password at least MinPasswordLen characters.
func ValidateRegisterInput(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.New("username and password required")
	}
	if len(password) < MinPasswordLen {
		return errors.New("password must be at least 3 characters")
	}
	return nil
}

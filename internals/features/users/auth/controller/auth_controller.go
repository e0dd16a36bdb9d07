package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/constants"
	database "biblioteka_backend/internals/databases"
	authHelper "biblioteka_backend/internals/features/users/auth/helper"
	userDTO "biblioteka_backend/internals/features/users/user/dto"
	userModel "biblioteka_backend/internals/features/users/user/model"
	helper "biblioteka_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// =============================
// 📝 Register
// =============================
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body credentialsRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Username = strings.TrimSpace(body.Username)
	body.Password = strings.TrimSpace(body.Password)

	if err := authHelper.ValidateRegisterInput(body.Username, body.Password); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	// plaintext never touches the database or the log
	hash, err := authHelper.HashPassword(body.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		UserUsername: body.Username,
		UserPassword: hash,
		UserRole:     constants.RoleUser,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "Username already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithData(c, fiber.StatusCreated, "User registered successfully", "user", userDTO.ToUserDTO(user))
}

// =============================
// 🔐 Login
// =============================
// No token is issued: the caller keeps the returned identity client-side.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body credentialsRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Username = strings.TrimSpace(body.Username)
	body.Password = strings.TrimSpace(body.Password)
	if body.Username == "" || body.Password == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Username and password required")
	}

	var user userModel.UserModel
	err := ctrl.DB.First(&user, "user_username = ?", body.Username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Login failed")
	}

	if authHelper.CheckPasswordHash(user.UserPassword, body.Password) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	return helper.SuccessWithData(c, fiber.StatusOK, "", "user", userDTO.ToUserDTO(user))
}

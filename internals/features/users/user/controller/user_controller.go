package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"biblioteka_backend/internals/constants"
	database "biblioteka_backend/internals/databases"
	loanModel "biblioteka_backend/internals/features/library/loans/model"
	authHelper "biblioteka_backend/internals/features/users/auth/helper"
	"biblioteka_backend/internals/features/users/user/dto"
	"biblioteka_backend/internals/features/users/user/model"
	helper "biblioteka_backend/internals/helpers"
)

var validateUser = validator.New()

var errUserHasActiveLoan = errors.New("user has an active loan")

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// =============================
// 📄 Get All Users
// =============================
func (ctrl *UserController) GetAllUsers(c *fiber.Ctx) error {
	var users []model.UserModel
	if err := ctrl.DB.Order("user_created_at DESC").Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}

	result := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, dto.ToUserDTO(u))
	}
	return c.JSON(result)
}

// =============================
// ➕ Create User
// =============================
func (ctrl *UserController) CreateUser(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Username = strings.TrimSpace(body.Username)
	if err := validateUser.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	user := model.UserModel{
		UserUsername: body.Username,
		UserRole:     constants.RoleUser,
		UserPhone:    strings.TrimSpace(body.Phone),
	}
	if email := strings.TrimSpace(body.Email); email != "" {
		user.UserEmail = &email
	}
	if body.Password != "" {
		hash, err := authHelper.HashPassword(body.Password)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Password hashing failed")
		}
		user.UserPassword = hash
	}

	if err := ctrl.DB.Create(&user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "Username or email already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithData(c, fiber.StatusCreated, "User created", "user", dto.ToUserDTO(user))
}

// =============================
// 🗑️ Delete User
// =============================
// Blocked while the user holds an active loan; returned loan history goes
// away together with the account.
func (ctrl *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.UserModel{}).Where("user_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}

		var open int64
		if err := tx.Model(&loanModel.LoanModel{}).
			Where("loan_user_id = ? AND loan_returned_at IS NULL", id).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return errUserHasActiveLoan
		}

		if err := tx.Delete(&loanModel.LoanModel{}, "loan_user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.UserModel{}, "user_id = ?", id).Error
	})

	switch err {
	case nil:
		return helper.Success(c, "User deleted")
	case gorm.ErrRecordNotFound:
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	case errUserHasActiveLoan:
		return helper.Error(c, fiber.StatusConflict, "User has an active loan")
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
}

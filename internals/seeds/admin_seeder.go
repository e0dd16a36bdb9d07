package seeds

import (
	"log"

	"gorm.io/gorm"

	"biblioteka_backend/internals/configs"
	"biblioteka_backend/internals/constants"
	authHelper "biblioteka_backend/internals/features/users/auth/helper"
	userModel "biblioteka_backend/internals/features/users/user/model"
)

// EnsureAdminUser makes sure the bootstrap admin account exists.
// Idempotent: an existing admin row is left untouched.
func EnsureAdminUser(db *gorm.DB) {
	username := configs.GetEnv("ADMIN_USERNAME", "admin")
	password := configs.GetEnv("ADMIN_PASSWORD", "admin")

	var n int64
	if err := db.Model(&userModel.UserModel{}).
		Where("user_username = ?", username).
		Count(&n).Error; err != nil {
		log.Printf("⚠️ admin seed check failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := authHelper.HashPassword(password)
	if err != nil {
		log.Printf("⚠️ admin seed hash failed: %v", err)
		return
	}

	admin := userModel.UserModel{
		UserUsername: username,
		UserPassword: hash,
		UserRole:     constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("⚠️ admin seed failed: %v", err)
		return
	}
	log.Printf("✅ bootstrap admin %q created.", username)
}

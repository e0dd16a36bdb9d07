package model

import "time"

type UserModel struct {
	UserID        uint      `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	UserUsername  string    `gorm:"column:user_username;type:varchar(50);uniqueIndex;not null" json:"user_username"`
	UserPassword  string    `gorm:"column:user_password;type:varchar(100);not null" json:"-"`
	UserRole      string    `gorm:"column:user_role;type:varchar(20);not null;default:'user'" json:"user_role"`
	UserEmail     *string   `gorm:"column:user_email;type:varchar(255);uniqueIndex" json:"user_email,omitempty"`
	UserPhone     string    `gorm:"column:user_phone;type:varchar(30)" json:"user_phone,omitempty"`
	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
}

// TableName sets the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

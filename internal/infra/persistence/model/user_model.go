package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The primary key is a bigserial, so the
// database assigns IDs at insert time. The unique indexes are named so the
// repository can tell a username collision from an email collision when an
// insert is rejected.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex:users_username_key;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:users_email_key;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null;column:password_hash"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

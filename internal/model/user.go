package model

import "time"

// User — учётная запись пользователя заметок.
type User struct {
	UserID string `gorm:"primaryKey;type:uuid" json:"user_id"`

	// Email хранится нормализованным (trim + lowercase).
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

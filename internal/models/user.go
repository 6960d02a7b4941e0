package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that can authenticate against the API
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"not null"`
	Email        string    `json:"email" db:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"not null"` // Hidden from JSON responses
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" gorm:"not null;default:false"`
	Verified     bool      `json:"verified" db:"verified" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName pins the table used by migrations and hand written queries.
func (User) TableName() string { return "users" }

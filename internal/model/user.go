package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role levels for dashboard users.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// User represents a dashboard login (staff or owner account).
type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:256;not null"`
	PasswordHash string `gorm:"not null"`
	DisplayName  string `gorm:"size:256"`
	Role         string `gorm:"size:32;not null;default:USER"`
	OwnerID      *string
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

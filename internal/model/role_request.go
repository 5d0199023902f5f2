package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role request outcomes.
const (
	RoleRequestPending  = "PENDING"
	RoleRequestApproved = "APPROVED"
	RoleRequestDenied   = "DENIED"
)

// RoleRequest is a user's request for an elevated dashboard role,
// decided by an admin.
type RoleRequest struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	UserID        string     `gorm:"size:36;index;not null" json:"userId"`
	RequestedRole string     `gorm:"size:32;not null" json:"requestedRole"`
	Status        string     `gorm:"size:32;not null;default:PENDING" json:"status"`
	DecidedBy     *string    `gorm:"size:36" json:"decidedBy,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updatedAt"`

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (r *RoleRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RoleRequestPending
	}
	return nil
}

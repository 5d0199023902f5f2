package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owner represents a client of the daycare.
type Owner struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Email     string    `gorm:"size:256;index" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Address   string    `gorm:"size:512" json:"address"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Canines  []Canine  `gorm:"foreignKey:OwnerID" json:"canines,omitempty"`
	Bookings []Booking `gorm:"foreignKey:OwnerID" json:"bookings,omitempty"`
}

func (o *Owner) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

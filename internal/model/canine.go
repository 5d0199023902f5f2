package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Canine represents a dog profile. Medical and Behavior are free-form
// structured documents; their shape is validated only where they are rendered.
type Canine struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string         `gorm:"size:36;index;not null" json:"ownerId"`
	Name      string         `gorm:"size:256;not null" json:"name"`
	Breed     string         `gorm:"size:256" json:"breed"`
	Sex       string         `gorm:"size:16" json:"sex"`
	BirthDate *time.Time     `json:"birthDate,omitempty"`
	Medical   datatypes.JSON `json:"medical,omitempty"`
	Behavior  datatypes.JSON `json:"behavior,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`

	// Associations
	Owner    Owner     `gorm:"constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Bookings []Booking `gorm:"foreignKey:CanineID" json:"bookings,omitempty"`
}

func (c *Canine) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopItem represents a product sold at the daycare front desk.
type ShopItem struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	PriceCents  int64     `gorm:"not null" json:"priceCents"`
	Stock       int       `gorm:"not null" json:"stock"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (s *ShopItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

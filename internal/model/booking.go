package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Check-in lifecycle values for a booking. The progression
// NOT_CHECKED_IN -> CHECKED_IN -> CHECKED_OUT is an application convention;
// the store does not guard transitions.
const (
	StatusNotCheckedIn = "NOT_CHECKED_IN"
	StatusCheckedIn    = "CHECKED_IN"
	StatusCheckedOut   = "CHECKED_OUT"
)

// Booking represents a single day-level daycare reservation for one canine.
// The owner reference is denormalized for query convenience. Date always
// carries a zero time-of-day component (UTC midnight). No uniqueness holds
// over (canine_id, date); duplicate bookings for the same day may coexist.
type Booking struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	CanineID            string     `gorm:"size:36;index;not null" json:"canineId"`
	OwnerID             string     `gorm:"size:36;index;not null" json:"ownerId"`
	Date                time.Time  `gorm:"index;not null" json:"date"`
	IsHalfDay           bool       `gorm:"not null" json:"isHalfDay"`
	OvernightStay       bool       `gorm:"not null" json:"overnightStay"`
	PreviousBookingDate *time.Time `json:"previousBookingDate,omitempty"`
	CheckInStatus       string     `gorm:"size:32;not null;default:NOT_CHECKED_IN" json:"checkInStatus"`
	CreatedAt           time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt           time.Time  `gorm:"not null" json:"updatedAt"`

	// Associations
	Canine Canine `gorm:"constraint:OnDelete:CASCADE" json:"canine,omitempty"`
	Owner  Owner  `gorm:"constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CheckInStatus == "" {
		b.CheckInStatus = StatusNotCheckedIn
	}
	return nil
}

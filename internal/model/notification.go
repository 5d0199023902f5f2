package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a broadcast message shown in the dashboard chrome.
// Read state is tracked per user in NotificationRead rows.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:256;not null" json:"title"`
	Body      string    `gorm:"size:2048" json:"body"`
	BookingID *string   `gorm:"size:36" json:"bookingId,omitempty"`
	CreatedBy string    `gorm:"size:36" json:"createdBy"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NotificationRead tracks whether a user has seen a notification.
// A row with a NULL ReadAt counts as unread.
type NotificationRead struct {
	NotificationID string     `gorm:"primaryKey;size:36" json:"notificationId"`
	UserID         string     `gorm:"primaryKey;size:36;index" json:"userId"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`
}

// PushSubscription holds the information for a browser push subscription,
// so staff get a badge update without polling.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	UserID    string    `gorm:"size:36;index" json:"userId"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

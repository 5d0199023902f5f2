package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dog-daycare-backend/internal/model"
)

// Store defines the database operations with real workflow semantics.
// Plain single-row CRUD goes through DB() directly in the handlers.
type Store interface {
	DB() *gorm.DB

	CreateBookingsBatch(ctx context.Context, canineID string, entries []BatchEntry) (*BatchResult, error)
	BookingsForCanine(ctx context.Context, canineID string) ([]model.Booking, error)
	BookingsForDate(ctx context.Context, day time.Time) ([]model.Booking, error)
	UpcomingBooking(ctx context.Context, canineID string) (*model.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, patch BookingStatusPatch) (int64, error)

	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
	BroadcastNotification(ctx context.Context, n *model.Notification) error

	DecideRoleRequest(ctx context.Context, requestID, deciderID string, approve bool) (*model.RoleRequest, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// UnreadCount counts the caller's notification-read rows that have never
// been marked read. Feeds the badge in the navigation chrome.
func (s *gormStore) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.NotificationRead{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead stamps the caller's read-state row. Marking an
// already-read notification refreshes the timestamp.
func (s *gormStore) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	if notificationID == "" || userID == "" {
		return fmt.Errorf("%w: notification id and user id are required", ErrValidation)
	}

	now := time.Now().UTC()
	res := s.db.WithContext(ctx).
		Model(&model.NotificationRead{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", now)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %s for user %s", ErrNotFound, notificationID, userID)
	}
	return nil
}

// BroadcastNotification persists the notification and fans out one unread
// read-state row per user, all in one transaction.
func (s *gormStore) BroadcastNotification(ctx context.Context, n *model.Notification) error {
	if n.Title == "" {
		return fmt.Errorf("%w: notification title is required", ErrValidation)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		var userIDs []string
		if err := tx.Model(&model.User{}).Pluck("id", &userIDs).Error; err != nil {
			return fmt.Errorf("failed to list users for fan-out: %w", err)
		}
		if len(userIDs) == 0 {
			return nil
		}

		reads := make([]model.NotificationRead, len(userIDs))
		for i, uid := range userIDs {
			reads[i] = model.NotificationRead{NotificationID: n.ID, UserID: uid}
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reads).Error; err != nil {
			return fmt.Errorf("failed to fan out read-state rows: %w", err)
		}
		return nil
	})
}

// DecideRoleRequest approves or denies a pending role request. Approval also
// flips the requesting user's role inside the same transaction.
func (s *gormStore) DecideRoleRequest(ctx context.Context, requestID, deciderID string, approve bool) (*model.RoleRequest, error) {
	if requestID == "" {
		return nil, fmt.Errorf("%w: request id is required", ErrValidation)
	}

	var req model.RoleRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: role request %s", ErrNotFound, requestID)
			}
			return fmt.Errorf("failed to load role request: %w", err)
		}
		if req.Status != model.RoleRequestPending {
			return fmt.Errorf("%w: role request %s is already %s", ErrValidation, requestID, req.Status)
		}

		now := time.Now().UTC()
		req.Status = model.RoleRequestDenied
		if approve {
			req.Status = model.RoleRequestApproved
		}
		req.DecidedBy = &deciderID
		req.DecidedAt = &now
		if err := tx.Save(&req).Error; err != nil {
			return fmt.Errorf("failed to save role request decision: %w", err)
		}

		if approve {
			if err := tx.Model(&model.User{}).
				Where("id = ?", req.UserID).
				Update("role", req.RequestedRole).Error; err != nil {
				return fmt.Errorf("failed to update user role: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

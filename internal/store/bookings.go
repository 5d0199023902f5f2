package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"dog-daycare-backend/internal/model"
)

// BatchEntry is one requested booking day in a batch submission.
type BatchEntry struct {
	Date      string `json:"date"`
	IsHalfDay bool   `json:"isHalfDay"`
}

// BookingResult wraps a booking that was successfully created.
type BookingResult struct {
	Index   int           `json:"-"`
	Success bool          `json:"success"`
	Booking model.Booking `json:"booking"`
}

// BookingFailure records one entry that could not be created.
type BookingFailure struct {
	Index   int    `json:"-"`
	Success bool   `json:"success"`
	Date    string `json:"date"`
	Error   string `json:"error"`
}

// BatchResult partitions a batch submission's outcomes. The two slices
// always add up to the number of submitted entries.
type BatchResult struct {
	Successful []BookingResult
	Failed     []BookingFailure
}

// CreateBookingsBatch creates one booking per entry for the given canine.
// Each entry is attempted independently and concurrently; a failing entry is
// recorded and never aborts or rolls back its siblings. The call returns only
// once every attempt has settled. No transaction wraps the batch, so a
// concurrent submission for the same canine and day also succeeds.
func (s *gormStore) CreateBookingsBatch(ctx context.Context, canineID string, entries []BatchEntry) (*BatchResult, error) {
	if canineID == "" {
		return nil, fmt.Errorf("%w: canine id is required", ErrValidation)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one date is required", ErrValidation)
	}

	var canine model.Canine
	if err := s.db.WithContext(ctx).First(&canine, "id = ?", canineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: canine %s", ErrNotFound, canineID)
		}
		return nil, fmt.Errorf("failed to resolve canine: %w", err)
	}

	// One cell per entry, addressed by index, so the goroutines never share
	// a write target. Outcomes are partitioned after the join.
	type outcome struct {
		booking *model.Booking
		err     error
	}
	outcomes := make([]outcome, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry BatchEntry) {
			defer wg.Done()

			day, err := DayKey(entry.Date)
			if err != nil {
				outcomes[i] = outcome{err: err}
				return
			}

			booking := model.Booking{
				CanineID:      canine.ID,
				OwnerID:       canine.OwnerID,
				Date:          day,
				IsHalfDay:     entry.IsHalfDay,
				CheckInStatus: model.StatusNotCheckedIn,
			}
			if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
				outcomes[i] = outcome{err: fmt.Errorf("failed to create booking: %w", err)}
				return
			}
			outcomes[i] = outcome{booking: &booking}
		}(i, entry)
	}
	wg.Wait()

	result := &BatchResult{}
	for i, o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, BookingFailure{
				Index: i,
				Date:  entries[i].Date,
				Error: o.err.Error(),
			})
			continue
		}
		result.Successful = append(result.Successful, BookingResult{
			Index:   i,
			Success: true,
			Booking: *o.booking,
		})
	}
	return result, nil
}

// BookingsForCanine returns every booking for the canine, oldest first.
func (s *gormStore) BookingsForCanine(ctx context.Context, canineID string) ([]model.Booking, error) {
	if canineID == "" {
		return nil, fmt.Errorf("%w: canine id is required", ErrValidation)
	}

	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("canine_id = ?", canineID).
		Order("date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// BookingsForDate returns the daily roster: every booking whose day key
// matches the given day.
func (s *gormStore) BookingsForDate(ctx context.Context, day time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Preload("Canine").
		Where("date = ?", day).
		Order("created_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}
	return bookings, nil
}

// UpcomingBooking returns the canine's earliest booking strictly after now,
// or nil when every booking is in the past.
func (s *gormStore) UpcomingBooking(ctx context.Context, canineID string) (*model.Booking, error) {
	if canineID == "" {
		return nil, fmt.Errorf("%w: canine id is required", ErrValidation)
	}

	var booking model.Booking
	err := s.db.WithContext(ctx).
		Where("canine_id = ? AND date > ?", canineID, time.Now().UTC()).
		Order("date ASC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming booking: %w", err)
	}
	return &booking, nil
}

// BookingStatusPatch is a partial update for the check-in/out endpoint.
// Nil fields are left untouched.
type BookingStatusPatch struct {
	IsHalfDay     *bool   `json:"isHalfDay"`
	OvernightStay *bool   `json:"overnightStay"`
	CheckInStatus *string `json:"checkInStatus"`
}

// UpdateBookingStatus applies the patch to all bookings matching the id
// (in practice zero or one) and returns the affected row count. Any
// checkInStatus value may be written at any time; the tri-state progression
// is not guarded here.
func (s *gormStore) UpdateBookingStatus(ctx context.Context, bookingID string, patch BookingStatusPatch) (int64, error) {
	if bookingID == "" {
		return 0, fmt.Errorf("%w: booking id is required", ErrValidation)
	}

	updates := make(map[string]any)
	if patch.IsHalfDay != nil {
		updates["is_half_day"] = *patch.IsHalfDay
	}
	if patch.OvernightStay != nil {
		updates["overnight_stay"] = *patch.OvernightStay
	}
	if patch.CheckInStatus != nil {
		updates["check_in_status"] = *patch.CheckInStatus
	}
	if len(updates) == 0 {
		return 0, fmt.Errorf("%w: at least one field must be provided", ErrValidation)
	}

	res := s.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", bookingID).
		Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

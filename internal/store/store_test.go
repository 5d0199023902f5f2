package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestCreateBookingsBatch_Validation(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	// No store call may happen before validation passes.
	_, err := s.CreateBookingsBatch(context.Background(), "", []BatchEntry{{Date: "2024-03-15"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateBookingsBatch(context.Background(), "c-1", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateBookingsBatch(context.Background(), "c-1", []BatchEntry{})
	assert.ErrorIs(t, err, ErrValidation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingsBatch_CanineNotFound(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "canines" WHERE id = \$1`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id"}))

	_, err := s.CreateBookingsBatch(context.Background(), "missing", []BatchEntry{{Date: "2024-03-15"}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpcomingBooking(t *testing.T) {
	t.Run("returns the earliest future booking", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		future := time.Now().UTC().AddDate(0, 0, 3).Truncate(24 * time.Hour)
		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE canine_id = \$1 AND date > \$2 ORDER BY date ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "canine_id", "owner_id", "date"}).
				AddRow("b-1", "c-1", "o-1", future))

		booking, err := s.UpcomingBooking(context.Background(), "c-1")
		assert.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, "b-1", booking.ID)
		assert.True(t, booking.Date.Equal(future))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when everything is in the past", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE canine_id = \$1 AND date > \$2 ORDER BY date ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		booking, err := s.UpcomingBooking(context.Background(), "c-1")
		assert.NoError(t, err)
		assert.Nil(t, booking)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty canine id fails validation", func(t *testing.T) {
		gormDB, _ := newTestDB(t)
		s := NewGormStore(gormDB)

		_, err := s.UpcomingBooking(context.Background(), "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	t.Run("empty patch fails validation", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		_, err := s.UpdateBookingStatus(context.Background(), "b-1", BookingStatusPatch{})
		assert.ErrorIs(t, err, ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("writes any status without a transition guard", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		status := "CHECKED_OUT"
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "bookings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		updated, err := s.UpdateBookingStatus(context.Background(), "b-1", BookingStatusPatch{CheckInStatus: &status})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id updates zero rows without error", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		half := true
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "bookings" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		updated, err := s.UpdateBookingStatus(context.Background(), "missing", BookingStatusPatch{IsHalfDay: &half})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUnreadCount(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notification_reads" WHERE user_id = $1 AND read_at IS NULL`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := s.UnreadCount(context.Background(), "u-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = s.UnreadCount(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

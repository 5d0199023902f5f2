package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dog-daycare-backend/internal/db"
	"dog-daycare-backend/internal/model"
	"dog-daycare-backend/internal/store"
)

func newIntegrationDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection serializes the batch creator's concurrent writes;
	// sqlite cannot take parallel writers.
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(testDB))
	return testDB
}

func seedOwnerAndCanine(t *testing.T, testDB *gorm.DB) (model.Owner, model.Canine) {
	owner := model.Owner{Name: "Jamie Ryder", Email: "jamie@example.com"}
	require.NoError(t, testDB.Create(&owner).Error)

	canine := model.Canine{OwnerID: owner.ID, Name: "Biscuit", Breed: "Corgi"}
	require.NoError(t, testDB.Create(&canine).Error)
	return owner, canine
}

// TestBookingBatchLifecycle walks the batch creator through a mixed batch and
// verifies the persisted state: valid entries land, the malformed one is
// reported without aborting its siblings.
func TestBookingBatchLifecycle(t *testing.T) {
	testDB := newIntegrationDB(t)
	s := store.NewGormStore(testDB)
	_, canine := seedOwnerAndCanine(t, testDB)

	entries := []store.BatchEntry{
		{Date: "2030-06-01T00:00:00Z", IsHalfDay: false},
		{Date: "completely-broken", IsHalfDay: true},
		{Date: "2030-06-02T15:45:00+02:00", IsHalfDay: true},
	}

	result, err := s.CreateBookingsBatch(context.Background(), canine.ID, entries)
	require.NoError(t, err)

	assert.Len(t, result.Successful, 2)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, len(entries), len(result.Successful)+len(result.Failed))
	assert.Equal(t, "completely-broken", result.Failed[0].Date)

	var persisted []model.Booking
	require.NoError(t, testDB.Order("date ASC").Find(&persisted).Error)
	require.Len(t, persisted, 2)

	// Dates are stored at UTC midnight regardless of input time or offset.
	assert.True(t, persisted[0].Date.Equal(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, persisted[1].Date.Equal(time.Date(2030, 6, 2, 0, 0, 0, 0, time.UTC)))
	for _, b := range persisted {
		assert.Equal(t, canine.ID, b.CanineID)
		assert.Equal(t, canine.OwnerID, b.OwnerID)
		assert.Equal(t, model.StatusNotCheckedIn, b.CheckInStatus)
	}
}

// TestBookingBatchDuplicates pins the current duplicate-tolerant behavior:
// two submissions for the same canine and day both persist. This documents
// observed behavior, not a guarantee.
func TestBookingBatchDuplicates(t *testing.T) {
	testDB := newIntegrationDB(t)
	s := store.NewGormStore(testDB)
	_, canine := seedOwnerAndCanine(t, testDB)

	entries := []store.BatchEntry{{Date: "2030-07-01"}}

	first, err := s.CreateBookingsBatch(context.Background(), canine.ID, entries)
	require.NoError(t, err)
	second, err := s.CreateBookingsBatch(context.Background(), canine.ID, entries)
	require.NoError(t, err)

	assert.Len(t, first.Successful, 1)
	assert.Len(t, second.Successful, 1)

	var count int64
	testDB.Model(&model.Booking{}).
		Where("canine_id = ? AND date = ?", canine.ID, time.Date(2030, 7, 1, 0, 0, 0, 0, time.UTC)).
		Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestUpcomingBookingQuery(t *testing.T) {
	testDB := newIntegrationDB(t)
	s := store.NewGormStore(testDB)
	_, canine := seedOwnerAndCanine(t, testDB)

	past := time.Now().UTC().AddDate(0, 0, -30).Truncate(24 * time.Hour)
	near := time.Now().UTC().AddDate(0, 0, 2).Truncate(24 * time.Hour)
	far := time.Now().UTC().AddDate(0, 0, 10).Truncate(24 * time.Hour)

	for _, d := range []time.Time{far, past, near} {
		require.NoError(t, testDB.Create(&model.Booking{
			CanineID: canine.ID,
			OwnerID:  canine.OwnerID,
			Date:     d,
		}).Error)
	}

	booking, err := s.UpcomingBooking(context.Background(), canine.ID)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.True(t, booking.Date.Equal(near), "expected the nearest future booking, got %v", booking.Date)

	// A canine with only past bookings has no upcoming booking.
	other := model.Canine{OwnerID: canine.OwnerID, Name: "Waffles"}
	require.NoError(t, testDB.Create(&other).Error)
	require.NoError(t, testDB.Create(&model.Booking{
		CanineID: other.ID,
		OwnerID:  other.OwnerID,
		Date:     past,
	}).Error)

	booking, err = s.UpcomingBooking(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestCheckInOutFlow(t *testing.T) {
	testDB := newIntegrationDB(t)
	s := store.NewGormStore(testDB)
	_, canine := seedOwnerAndCanine(t, testDB)

	booking := model.Booking{
		CanineID: canine.ID,
		OwnerID:  canine.OwnerID,
		Date:     time.Date(2030, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, testDB.Create(&booking).Error)

	checkedIn := model.StatusCheckedIn
	updated, err := s.UpdateBookingStatus(context.Background(), booking.ID, store.BookingStatusPatch{CheckInStatus: &checkedIn})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	// The store accepts any value at any time; there is no transition guard.
	backToStart := model.StatusNotCheckedIn
	overnight := true
	updated, err = s.UpdateBookingStatus(context.Background(), booking.ID, store.BookingStatusPatch{
		CheckInStatus: &backToStart,
		OvernightStay: &overnight,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var got model.Booking
	require.NoError(t, testDB.First(&got, "id = ?", booking.ID).Error)
	assert.Equal(t, model.StatusNotCheckedIn, got.CheckInStatus)
	assert.True(t, got.OvernightStay)
}

func TestNotificationFanOutAndBadge(t *testing.T) {
	testDB := newIntegrationDB(t)
	s := store.NewGormStore(testDB)

	users := []model.User{
		{Email: "staff1@example.com", PasswordHash: "x", Role: model.RoleModerator},
		{Email: "staff2@example.com", PasswordHash: "x", Role: model.RoleUser},
	}
	for i := range users {
		require.NoError(t, testDB.Create(&users[i]).Error)
	}

	n := model.Notification{Title: "New booking for Biscuit", CreatedBy: users[0].ID}
	require.NoError(t, s.BroadcastNotification(context.Background(), &n))

	// Every user starts with one unread row.
	for _, u := range users {
		count, err := s.UnreadCount(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}

	// Reading clears the badge for that user only.
	require.NoError(t, s.MarkNotificationRead(context.Background(), n.ID, users[0].ID))

	count, err := s.UnreadCount(context.Background(), users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = s.UnreadCount(context.Background(), users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Marking an unknown notification is a not-found, not a silent no-op.
	err = s.MarkNotificationRead(context.Background(), "missing", users[0].ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoleRequestDecision(t *testing.T) {
	testDB := newIntegrationDB(t)
	s := store.NewGormStore(testDB)

	admin := model.User{Email: "admin@example.com", PasswordHash: "x", Role: model.RoleAdmin}
	require.NoError(t, testDB.Create(&admin).Error)
	user := model.User{Email: "user@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, testDB.Create(&user).Error)

	req := model.RoleRequest{UserID: user.ID, RequestedRole: model.RoleModerator}
	require.NoError(t, testDB.Create(&req).Error)

	decided, err := s.DecideRoleRequest(context.Background(), req.ID, admin.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.RoleRequestApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, admin.ID, *decided.DecidedBy)

	var got model.User
	require.NoError(t, testDB.First(&got, "id = ?", user.ID).Error)
	assert.Equal(t, model.RoleModerator, got.Role)

	// A decided request cannot be decided again.
	_, err = s.DecideRoleRequest(context.Background(), req.ID, admin.ID, false)
	assert.ErrorIs(t, err, store.ErrValidation)
}

package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dog-daycare-backend/internal/model"
	"dog-daycare-backend/internal/mw"
	"dog-daycare-backend/internal/store"
)

type createBookingRequest struct {
	CanineID            string `json:"canineId" binding:"required"`
	Date                string `json:"date" binding:"required"`
	IsHalfDay           bool   `json:"isHalfDay"`
	OvernightStay       bool   `json:"overnightStay"`
	PreviousBookingDate string `json:"previousBookingDate"`
}

// CreateBooking handles POST /api/bookings (single create).
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := store.DayKey(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var canine model.Canine
	dbErr := h.store.DB().First(&canine, "id = ?", req.CanineID).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "canine not found"})
		return
	}
	if dbErr != nil {
		fail(c, dbErr)
		return
	}

	booking := model.Booking{
		CanineID:      canine.ID,
		OwnerID:       canine.OwnerID,
		Date:          day,
		IsHalfDay:     req.IsHalfDay,
		OvernightStay: req.OvernightStay,
	}
	if req.PreviousBookingDate != "" {
		prev, err := store.DayKey(req.PreviousBookingDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		booking.PreviousBookingDate = &prev
	}

	if err := h.store.DB().Create(&booking).Error; err != nil {
		fail(c, err)
		return
	}

	h.notifyOwner(c, canine.OwnerID, []model.Booking{booking})
	c.JSON(http.StatusCreated, booking)
}

type batchBookingRequest struct {
	Dates []store.BatchEntry `json:"dates" binding:"required,min=1"`
}

// CreateBookingsBatch handles POST /api/bookings/multiple-bookings/:canineId.
// Entries succeed or fail independently; the response reports both partitions.
func (h *Handler) CreateBookingsBatch(c *gin.Context) {
	var req batchBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be a non-empty array"})
		return
	}

	result, err := h.store.CreateBookingsBatch(c.Request.Context(), c.Param("canineId"), req.Dates)
	if err != nil {
		fail(c, err)
		return
	}

	if len(result.Successful) > 0 {
		bookings := make([]model.Booking, len(result.Successful))
		for i, r := range result.Successful {
			bookings[i] = r.Booking
		}
		h.notifyOwner(c, bookings[0].OwnerID, bookings)
	}

	c.JSON(http.StatusOK, gin.H{
		"successfulBookings": orEmptyResults(result.Successful),
		"failedBookings":     orEmptyFailures(result.Failed),
	})
}

func orEmptyResults(in []store.BookingResult) []store.BookingResult {
	if in == nil {
		return []store.BookingResult{}
	}
	return in
}

func orEmptyFailures(in []store.BookingFailure) []store.BookingFailure {
	if in == nil {
		return []store.BookingFailure{}
	}
	return in
}

// notifyOwner mails the owner a confirmation and pushes a staff notification.
// Both are best effort and never affect the response.
func (h *Handler) notifyOwner(c *gin.Context, ownerID string, bookings []model.Booking) {
	var owner model.Owner
	if err := h.store.DB().First(&owner, "id = ?", ownerID).Error; err != nil {
		log.Printf("Could not resolve owner %s for confirmation: %v", ownerID, err)
		return
	}

	h.mailer.SendBookingConfirmation(owner.Email, bookings)

	n := model.Notification{
		Title:     fmt.Sprintf("%d new booking(s) for %s", len(bookings), owner.Name),
		BookingID: &bookings[0].ID,
		CreatedBy: c.GetString(mw.CtxUserID),
	}
	if err := h.store.BroadcastNotification(c.Request.Context(), &n); err != nil {
		log.Printf("Failed to broadcast booking notification: %v", err)
		return
	}
	if h.pool != nil {
		h.pool.Dispatch(n.ID)
	}
}

// ListBookingsForCanine handles GET /api/bookings/multiple-bookings/:canineId.
func (h *Handler) ListBookingsForCanine(c *gin.Context) {
	bookings, err := h.store.BookingsForCanine(c.Request.Context(), c.Param("canineId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListBookingsForDate handles GET /api/bookings?date=YYYY-MM-DD, the staff
// roster for one day.
func (h *Handler) ListBookingsForDate(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	day, err := store.DayKey(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.store.BookingsForDate(c.Request.Context(), day)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// sixMonthWarningDays is the gap after which staff are warned that a canine
// has not visited for a long time.
const sixMonthWarningDays = 182

// GetUpcomingBooking handles GET /api/bookings/upcoming-bookings/:canineId.
// Responds with the next booking strictly after now, or null.
func (h *Handler) GetUpcomingBooking(c *gin.Context) {
	booking, err := h.store.UpcomingBooking(c.Request.Context(), c.Param("canineId"))
	if err != nil {
		fail(c, err)
		return
	}
	if booking == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	warning := false
	if booking.PreviousBookingDate != nil {
		warning = booking.Date.Sub(*booking.PreviousBookingDate).Hours() > 24*sixMonthWarningDays
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":         booking,
		"date":            booking.Date,
		"sixMonthWarning": warning,
	})
}

// UpdateBookingStatus handles PATCH /api/bookings/book-in-out/:bookingId.
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var patch store.BookingStatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateBookingStatus(c.Request.Context(), c.Param("bookingId"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// DeleteBooking handles DELETE /api/bookings/:bookingId.
func (h *Handler) DeleteBooking(c *gin.Context) {
	res := h.store.DB().Delete(&model.Booking{}, "id = ?", c.Param("bookingId"))
	if res.Error != nil {
		fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

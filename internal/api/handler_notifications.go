package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"dog-daycare-backend/internal/model"
	"dog-daycare-backend/internal/mw"
)

// notificationRow joins a notification with the caller's read state.
type notificationRow struct {
	model.Notification
	ReadAt *time.Time `json:"readAt"`
}

// ListNotifications handles GET /api/notifications for the session user.
func (h *Handler) ListNotifications(c *gin.Context) {
	userID := c.GetString(mw.CtxUserID)

	var rows []notificationRow
	err := h.store.DB().
		Model(&model.Notification{}).
		Select("notifications.*, notification_reads.read_at as read_at").
		Joins("JOIN notification_reads ON notification_reads.notification_id = notifications.id").
		Where("notification_reads.user_id = ?", userID).
		Order("notifications.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetUnreadCount handles GET /api/notifications/unread-count, feeding the
// navigation badge.
func (h *Handler) GetUnreadCount(c *gin.Context) {
	count, err := h.store.UnreadCount(c.Request.Context(), c.GetString(mw.CtxUserID))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead handles POST /api/notifications/:notificationId/read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	err := h.store.MarkNotificationRead(c.Request.Context(), c.Param("notificationId"), c.GetString(mw.CtxUserID))
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createNotificationRequest struct {
	Title     string  `json:"title" binding:"required"`
	Body      string  `json:"body"`
	BookingID *string `json:"bookingId"`
}

// CreateNotification handles POST /api/notifications: a staff broadcast that
// fans out to every user and is pushed to subscribed browsers.
func (h *Handler) CreateNotification(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n := model.Notification{
		Title:     req.Title,
		Body:      req.Body,
		BookingID: req.BookingID,
		CreatedBy: c.GetString(mw.CtxUserID),
	}
	if err := h.store.BroadcastNotification(c.Request.Context(), &n); err != nil {
		fail(c, err)
		return
	}
	if h.pool != nil {
		h.pool.Dispatch(n.ID)
	}
	c.JSON(http.StatusCreated, n)
}

type putSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	P256DH   string `json:"p256dh" binding:"required"`
	Auth     string `json:"auth" binding:"required"`
}

// PutSubscription handles PUT /api/notifications/subscriptions, registering
// or refreshing the caller's browser push subscription.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := model.PushSubscription{
		Endpoint: req.Endpoint,
		UserID:   c.GetString(mw.CtxUserID),
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	}
	err := h.store.DB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
	}).Create(&sub).Error
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles DELETE /api/notifications/subscriptions.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.DB().Delete(&model.PushSubscription{Endpoint: req.Endpoint}).Error; err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetVAPIDPublicKey returns the VAPID public key to the client.
func (h *Handler) GetVAPIDPublicKey(c *gin.Context) {
	if h.webpush == nil || h.webpush.VAPIDPublicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vapid keys are not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_key": h.webpush.VAPIDPublicKey})
}

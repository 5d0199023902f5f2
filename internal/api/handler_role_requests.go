package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dog-daycare-backend/internal/model"
	"dog-daycare-backend/internal/mw"
)

type roleRequestBody struct {
	RequestedRole string `json:"requestedRole" binding:"required,oneof=MODERATOR ADMIN"`
}

// CreateRoleRequest handles POST /api/role-requests. A user may only have one
// pending request at a time.
func (h *Handler) CreateRoleRequest(c *gin.Context) {
	var req roleRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(mw.CtxUserID)
	var pending int64
	err := h.store.DB().
		Model(&model.RoleRequest{}).
		Where("user_id = ? AND status = ?", userID, model.RoleRequestPending).
		Count(&pending).Error
	if err != nil {
		fail(c, err)
		return
	}
	if pending > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "a role request is already pending"})
		return
	}

	rr := model.RoleRequest{UserID: userID, RequestedRole: req.RequestedRole}
	if err := h.store.DB().Create(&rr).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rr)
}

// ListRoleRequests handles GET /api/role-requests?status=PENDING.
func (h *Handler) ListRoleRequests(c *gin.Context) {
	q := h.store.DB().Order("created_at ASC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []model.RoleRequest
	if err := q.Find(&requests).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ApproveRoleRequest handles POST /api/role-requests/:requestId/approve.
func (h *Handler) ApproveRoleRequest(c *gin.Context) {
	h.decideRoleRequest(c, true)
}

// DenyRoleRequest handles POST /api/role-requests/:requestId/deny.
func (h *Handler) DenyRoleRequest(c *gin.Context) {
	h.decideRoleRequest(c, false)
}

func (h *Handler) decideRoleRequest(c *gin.Context, approve bool) {
	req, err := h.store.DecideRoleRequest(c.Request.Context(), c.Param("requestId"), c.GetString(mw.CtxUserID), approve)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

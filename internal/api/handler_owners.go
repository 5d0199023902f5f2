package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dog-daycare-backend/internal/model"
)

// OwnerSummary is the list-view row: owner fields plus a canine count.
type OwnerSummary struct {
	model.Owner
	CanineCount int64 `json:"canineCount"`
}

// ListOwners handles GET /api/owners.
func (h *Handler) ListOwners(c *gin.Context) {
	var owners []model.Owner
	if err := h.store.DB().Order("name ASC").Find(&owners).Error; err != nil {
		fail(c, err)
		return
	}

	// One aggregate query instead of a count per owner.
	type countRow struct {
		OwnerID string
		N       int64
	}
	var counts []countRow
	if err := h.store.DB().
		Model(&model.Canine{}).
		Select("owner_id as owner_id, COUNT(*) as n").
		Group("owner_id").
		Scan(&counts).Error; err != nil {
		fail(c, err)
		return
	}
	countMap := make(map[string]int64, len(counts))
	for _, row := range counts {
		countMap[row.OwnerID] = row.N
	}

	summaries := make([]OwnerSummary, 0, len(owners))
	for _, o := range owners {
		summaries = append(summaries, OwnerSummary{Owner: o, CanineCount: countMap[o.ID]})
	}
	c.JSON(http.StatusOK, summaries)
}

// GetOwner handles GET /api/owners/:ownerId, including the owner's canines.
func (h *Handler) GetOwner(c *gin.Context) {
	var owner model.Owner
	err := h.store.DB().Preload("Canines").First(&owner, "id = ?", c.Param("ownerId")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

type ownerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateOwner handles POST /api/owners.
func (h *Handler) CreateOwner(c *gin.Context) {
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := model.Owner{Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.store.DB().Create(&owner).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, owner)
}

// UpdateOwner handles PUT /api/owners/:ownerId.
func (h *Handler) UpdateOwner(c *gin.Context) {
	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner model.Owner
	err := h.store.DB().First(&owner, "id = ?", c.Param("ownerId")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	owner.Name = req.Name
	owner.Email = req.Email
	owner.Phone = req.Phone
	owner.Address = req.Address
	if err := h.store.DB().Save(&owner).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

// DeleteOwner handles DELETE /api/owners/:ownerId.
func (h *Handler) DeleteOwner(c *gin.Context) {
	res := h.store.DB().Delete(&model.Owner{}, "id = ?", c.Param("ownerId"))
	if res.Error != nil {
		fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

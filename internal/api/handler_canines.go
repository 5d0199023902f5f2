package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dog-daycare-backend/internal/model"
)

type canineRequest struct {
	OwnerID   string         `json:"ownerId" binding:"required"`
	Name      string         `json:"name" binding:"required"`
	Breed     string         `json:"breed"`
	Sex       string         `json:"sex"`
	BirthDate *time.Time     `json:"birthDate"`
	Medical   datatypes.JSON `json:"medical"`
	Behavior  datatypes.JSON `json:"behavior"`
}

// ListCaninesForOwner handles GET /api/owners/:ownerId/canines.
func (h *Handler) ListCaninesForOwner(c *gin.Context) {
	var canines []model.Canine
	err := h.store.DB().
		Where("owner_id = ?", c.Param("ownerId")).
		Order("name ASC").
		Find(&canines).Error
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, canines)
}

// GetCanine handles GET /api/canines/:canineId.
func (h *Handler) GetCanine(c *gin.Context) {
	var canine model.Canine
	err := h.store.DB().Preload("Owner").First(&canine, "id = ?", c.Param("canineId")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "canine not found"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, canine)
}

// CreateCanine handles POST /api/canines. The owner must already exist.
func (h *Handler) CreateCanine(c *gin.Context) {
	var req canineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner model.Owner
	err := h.store.DB().First(&owner, "id = ?", req.OwnerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	canine := model.Canine{
		OwnerID:   owner.ID,
		Name:      req.Name,
		Breed:     req.Breed,
		Sex:       req.Sex,
		BirthDate: req.BirthDate,
		Medical:   req.Medical,
		Behavior:  req.Behavior,
	}
	if err := h.store.DB().Create(&canine).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, canine)
}

// UpdateCanine handles PUT /api/canines/:canineId.
func (h *Handler) UpdateCanine(c *gin.Context) {
	var req canineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var canine model.Canine
	err := h.store.DB().First(&canine, "id = ?", c.Param("canineId")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "canine not found"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	canine.OwnerID = req.OwnerID
	canine.Name = req.Name
	canine.Breed = req.Breed
	canine.Sex = req.Sex
	canine.BirthDate = req.BirthDate
	canine.Medical = req.Medical
	canine.Behavior = req.Behavior
	if err := h.store.DB().Save(&canine).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, canine)
}

// DeleteCanine handles DELETE /api/canines/:canineId.
func (h *Handler) DeleteCanine(c *gin.Context) {
	res := h.store.DB().Delete(&model.Canine{}, "id = ?", c.Param("canineId"))
	if res.Error != nil {
		fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "canine not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

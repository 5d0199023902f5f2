package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dog-daycare-backend/internal/model"
)

// ListShopItems handles GET /api/shop/items. Only active items are returned
// unless ?all=true is set.
func (h *Handler) ListShopItems(c *gin.Context) {
	q := h.store.DB().Order("name ASC")
	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var items []model.ShopItem
	if err := q.Find(&items).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type shopItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents" binding:"min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
	Active      *bool  `json:"active"`
}

// CreateShopItem handles POST /api/shop/items.
func (h *Handler) CreateShopItem(c *gin.Context) {
	var req shopItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := model.ShopItem{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Active:      true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := h.store.DB().Create(&item).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateShopItem handles PUT /api/shop/items/:itemId.
func (h *Handler) UpdateShopItem(c *gin.Context) {
	var req shopItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item model.ShopItem
	err := h.store.DB().First(&item, "id = ?", c.Param("itemId")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop item not found"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.PriceCents = req.PriceCents
	item.Stock = req.Stock
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := h.store.DB().Save(&item).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteShopItem handles DELETE /api/shop/items/:itemId.
func (h *Handler) DeleteShopItem(c *gin.Context) {
	res := h.store.DB().Delete(&model.ShopItem{}, "id = ?", c.Param("itemId"))
	if res.Error != nil {
		fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "shop item not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

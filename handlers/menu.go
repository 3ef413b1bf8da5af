package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bean-buzz/beanbuzz-backend/database"
	"github.com/bean-buzz/beanbuzz-backend/models"
)

// MenuHandler serves the menu catalog.
type MenuHandler struct {
	menu   database.MenuStore
	logger *zap.Logger
}

// NewMenuHandler wires the menu catalog endpoints.
func NewMenuHandler(menu database.MenuStore, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, logger: logger}
}

// List returns the entire menu
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.menu.List(c.Request.Context())
	if err != nil {
		h.logger.Error("menu list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

// ListByCategory returns all items in a specific category
func (h *MenuHandler) ListByCategory(c *gin.Context) {
	category := c.Param("categoryName")
	items, err := h.menu.ListByCategory(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("menu list by category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No items found for the category: " + category + "."})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem returns the details of a single menu item
func (h *MenuHandler) GetItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item id."})
		return
	}
	item, err := h.menu.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found."})
			return
		}
		h.logger.Error("menu get item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateItem adds a new menu item (admin only)
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := item.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	created, err := h.menu.Create(c.Request.Context(), &item)
	if err != nil {
		h.logger.Error("menu create item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateItem updates a specific menu item (admin only)
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item id."})
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := item.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	updated, err := h.menu.Update(c.Request.Context(), id, &item)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found."})
			return
		}
		h.logger.Error("menu update item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update the menu item."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteItem removes a specific menu item (admin only)
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid menu item id."})
		return
	}
	if err := h.menu.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found."})
			return
		}
		h.logger.Error("menu delete item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully."})
}

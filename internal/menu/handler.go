package menu

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// List the menu
// --------------------------------------------------
func (h *Handler) Catalog(c *gin.Context) {
	items, err := h.service.Catalog(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// --------------------------------------------------
// Single item
// --------------------------------------------------
func (h *Handler) Item(c *gin.Context) {
	item, err := h.service.Item(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("itemId"),
	)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

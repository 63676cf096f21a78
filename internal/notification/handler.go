package notification

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
// Feed
// --------------------------------------------------
func (h *Handler) Feed(c *gin.Context) {
	notifications, err := h.service.Feed(c.Request.Context(), c.Param("restaurantId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if notifications == nil {
		notifications = []Notification{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// --------------------------------------------------
// Table actions
// --------------------------------------------------
func (h *Handler) RaiseAction(c *gin.Context) {
	var req struct {
		TableID string `json:"tableId" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	n, err := h.service.RaiseAction(
		c.Request.Context(),
		c.Param("restaurantId"),
		req.TableID,
		req.Type,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, n)
}

// --------------------------------------------------
// Dismiss / delivery
// --------------------------------------------------
func (h *Handler) Dismiss(c *gin.Context) {
	if err := h.service.Dismiss(c.Request.Context(), c.Param("notificationId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification dismissed"})
}

func (h *Handler) MarkDelivered(c *gin.Context) {
	if err := h.service.MarkDelivered(c.Request.Context(), c.Param("deliveryId")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked delivered"})
}

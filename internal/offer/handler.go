package offer

import (
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
// List active offers for a table
// --------------------------------------------------
func (h *Handler) ListActive(c *gin.Context) {
	offers, err := h.service.ActiveOffers(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Query("tableId"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if offers == nil {
		offers = []Offer{}
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// --------------------------------------------------
// Generate offers for a table
// --------------------------------------------------
func (h *Handler) Generate(c *gin.Context) {
	var req struct {
		TableID string   `json:"tableId" binding:"required"`
		Courses []string `json:"courses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	offers, err := h.service.GenerateDynamicOffers(
		c.Request.Context(),
		c.Param("restaurantId"),
		req.TableID,
		req.Courses,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if offers == nil {
		offers = []Offer{}
	}

	c.JSON(http.StatusCreated, gin.H{"offers": offers})
}

package bill

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Noel-auki/order-engine/internal/order"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Current bill
// --------------------------------------------------
func (h *Handler) Current(c *gin.Context) {
	b, err := h.service.Current(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
	)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active order for table"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

// --------------------------------------------------
// Print bill
// --------------------------------------------------
func (h *Handler) Print(c *gin.Context) {
	printed, err := h.service.Print(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
	)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active order for table"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, printed)
}

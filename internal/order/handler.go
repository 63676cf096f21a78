package order

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
// Submit items
// --------------------------------------------------
func (h *Handler) Submit(c *gin.Context) {
	var req struct {
		TableID         string   `json:"tableId" binding:"required"`
		Items           Items    `json:"items" binding:"required"`
		Instructions    []string `json:"instructions"`
		OrderType       string   `json:"orderType"`
		SelectedOfferID string   `json:"selectedOfferId"`
		GuestCount      int      `json:"guestCount"`
		ForceNewOrder   bool     `json:"forceNewOrder"`
		OrderID         string   `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), SubmitRequest{
		RestaurantID:    c.Param("restaurantId"),
		TableID:         req.TableID,
		Items:           req.Items,
		Instructions:    req.Instructions,
		OrderType:       req.OrderType,
		SelectedOfferID: req.SelectedOfferID,
		GuestCount:      req.GuestCount,
		ForceNewOrder:   req.ForceNewOrder,
		OrderID:         req.OrderID,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// Table view
// --------------------------------------------------
func (h *Handler) Combined(c *gin.Context) {
	view, err := h.service.Combined(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// --------------------------------------------------
// Staged orders
// --------------------------------------------------
func (h *Handler) Stage(c *gin.Context) {
	var req struct {
		Items Items `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.service.Stage(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
		req.Items,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *Handler) ReplaceStaged(c *gin.Context) {
	var req struct {
		Items Items `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.service.ReplaceStaged(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
		req.Items,
	)
	if err != nil {
		if errors.Is(err, ErrTempNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no staged order"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *Handler) CancelStaged(c *gin.Context) {
	err := h.service.CancelStaged(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
	)
	if err != nil {
		if errors.Is(err, ErrTempNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no staged order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "staged order cancelled"})
}

func (h *Handler) Promote(c *gin.Context) {
	result, err := h.service.Promote(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
	)
	if err != nil {
		if errors.Is(err, ErrTempNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no staged order"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// --------------------------------------------------
// Remove a customization
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	var req struct {
		ItemID      string   `json:"itemId" binding:"required"`
		VariationID string   `json:"variationId"`
		AddonGroups []string `json:"addonGroups"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.RemoveItem(
		c.Request.Context(),
		c.Param("orderId"),
		req.ItemID,
		req.VariationID,
		req.AddonGroups,
	)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, o)
}

// --------------------------------------------------
// Instructions, guest count, service charge
// --------------------------------------------------
func (h *Handler) AppendInstruction(c *gin.Context) {
	var req struct {
		Instruction string `json:"instruction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.AppendInstruction(c.Request.Context(), c.Param("orderId"), req.Instruction)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) SetGuestCount(c *gin.Context) {
	var req struct {
		GuestCount int `json:"guestCount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetGuestCount(c.Request.Context(), c.Param("orderId"), req.GuestCount); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guest count updated"})
}

func (h *Handler) WaiveServiceCharge(c *gin.Context) {
	var req struct {
		Waived bool `json:"waived"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.WaiveServiceCharge(c.Request.Context(), c.Param("orderId"), req.Waived); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service charge updated"})
}

// --------------------------------------------------
// Settlement
// --------------------------------------------------
func (h *Handler) Complete(c *gin.Context) {
	completed, err := h.service.Complete(
		c.Request.Context(),
		c.Param("restaurantId"),
		c.Param("tableId"),
	)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active order for table"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, completed)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/service"
)

// createOrder handles POST /orders
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	order, err := h.orders.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// decideOrder handles PUT /orders/:id/approve
func (h *Handler) decideOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	order, err := h.orders.Decide(c.Request.Context(), CurrentUser(c), id, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// pickupOrder handles PUT /orders/:id/pickup
func (h *Handler) pickupOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.MarkPickedUp(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// completeOrder handles PUT /orders/:id/complete
func (h *Handler) completeOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.Complete(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// adminCancelOrder handles PUT /orders/admin/:id/cancel
func (h *Handler) adminCancelOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.AdminCancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// myBuys handles GET /orders/my-buys
func (h *Handler) myBuys(c *gin.Context) {
	orders, err := h.orders.MyBuys(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// mySells handles GET /orders/my-sells
func (h *Handler) mySells(c *gin.Context) {
	orders, err := h.orders.MySells(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// allOrders handles GET /orders/admin/all
func (h *Handler) allOrders(c *gin.Context) {
	orders, err := h.orders.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/service"
)

// createPaymentIntent handles POST /payments/create
func (h *Handler) createPaymentIntent(c *gin.Context) {
	var req struct {
		OrderID int64 `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == 0 {
		respondError(c, apperr.Validation("order_id required"))
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), CurrentUser(c), req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, intent)
}

// verifyPayment handles POST /payments/verify
func (h *Handler) verifyPayment(c *gin.Context) {
	var req service.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	order, err := h.payments.Verify(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "payment verified successfully",
		"order":   order,
	})
}

// sellerStats handles GET /stats/seller
func (h *Handler) sellerStats(c *gin.Context) {
	stats, err := h.stats.Seller(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// buyerStats handles GET /stats/buyer
func (h *Handler) buyerStats(c *gin.Context) {
	stats, err := h.stats.Buyer(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// adminStats handles GET /stats/admin
func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.stats.Admin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/service"
)

// register handles POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// login handles POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// me handles GET /auth/me
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

// listUsers handles GET /users/admin/all
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// toggleUserBlock handles PUT /users/admin/:id/toggle
func (h *Handler) toggleUserBlock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.auth.ToggleBlock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "user unblocked successfully"
	if user.IsBlocked {
		message = "user blocked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "user": user})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/service"
)

// createMaterial handles POST /materials
func (h *Handler) createMaterial(c *gin.Context) {
	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	material, err := h.materials.Create(c.Request.Context(), CurrentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// updateMaterial handles PUT /materials/:id
func (h *Handler) updateMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	material, err := h.materials.Update(c.Request.Context(), CurrentUser(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// deleteMaterial handles DELETE /materials/:id
func (h *Handler) deleteMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.materials.Delete(c.Request.Context(), CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "material deleted successfully"})
}

// listMaterials handles GET /materials
func (h *Handler) listMaterials(c *gin.Context) {
	materials, err := h.materials.Marketplace(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// myMaterials handles GET /materials/my
func (h *Handler) myMaterials(c *gin.Context) {
	materials, err := h.materials.Mine(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// getMaterial handles GET /materials/:id
func (h *Handler) getMaterial(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	material, err := h.materials.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

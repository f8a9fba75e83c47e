package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
	"reclaim-market/internal/service"
)

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/sellers-only",
		func(c *gin.Context) { c.Set(ctxUserKey, &models.User{ID: 1, Role: models.RoleBuyer}) },
		RequireRole(models.RoleSeller),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	router.GET("/buyers-only",
		func(c *gin.Context) { c.Set(ctxUserKey, &models.User{ID: 1, Role: models.RoleBuyer}) },
		RequireRole(models.RoleBuyer),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sellers-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), apperr.CodeForbidden)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/buyers-only", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/not-found", func(c *gin.Context) {
		respondError(c, apperr.NotFound("order not found: %d", 9))
	})
	router.GET("/boom", func(c *gin.Context) {
		respondError(c, errors.New("pq: connection refused"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/not-found", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), apperr.CodeNotFound)

	// Errors outside the taxonomy never leak their message.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), apperr.CodeInternal)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestPathID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/orders/:id", func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/42", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")

	for _, bad := range []string{"abc", "0", "-1"} {
		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q should be rejected", bad)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Tokens are rejected before the user store is ever consulted, so a
	// service with no backing store is enough here.
	h := &Handler{auth: service.NewAuthService(nil, nil, "secret", time.Hour)}
	router := gin.New()
	router.GET("/me", h.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), apperr.CodeUnauthenticated)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

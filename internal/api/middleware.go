package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/auth"
	"reclaim-market/internal/models"
)

const ctxUserKey = "user"

// Authenticate parses the bearer token and resolves the live user
// record behind it. Resolving the record, not just the claims, means a
// block applied after token issuance takes effect on the next request.
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWith(c, apperr.Unauthenticated("no token provided"))
			return
		}

		claims, err := auth.ParseToken(h.auth.Secret(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortWith(c, apperr.Unauthenticated("invalid token"))
			return
		}

		user, err := h.auth.ResolveUser(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// RequireRole gates a route group on the resolved user's role. This is
// the single authorization check; handlers below it only verify
// ownership of the specific entity.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		abortWith(c, apperr.Forbidden("access denied"))
	}
}

// CurrentUser returns the authenticated user set by Authenticate.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUserKey).(*models.User)
}

func abortWith(c *gin.Context, err error) {
	var body gin.H
	if e, ok := err.(*apperr.Error); ok {
		body = gin.H{"code": e.Code, "message": e.Message}
	} else {
		body = gin.H{"code": apperr.CodeInternal, "message": "internal server error"}
	}
	c.AbortWithStatusJSON(apperr.StatusOf(err), body)
}

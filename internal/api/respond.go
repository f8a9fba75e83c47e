package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/util"
)

// respondError maps domain errors to their status and code. Anything
// outside the taxonomy is logged and reported as a generic 500 so
// internals never leak.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		c.JSON(e.Status, gin.H{"code": e.Code, "message": e.Message})
		return
	}

	util.GetLogger().Error("Unhandled error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(500, gin.H{"code": apperr.CodeInternal, "message": "internal server error"})
}

// pathID parses the :id path parameter, reporting a Validation error on
// garbage input.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, apperr.Validation("invalid id: %s", c.Param("id")))
		return 0, false
	}
	return id, true
}

// Package memo contains the memo CRUD endpoints
package memo

import (
	"errors"
	"net/http"

	"memoknot/memo-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// serviceError maps memo service failures onto the response shape every
// handler uses. Cross-owner access surfaces as a plain 404.
func serviceError(c *gin.Context, requestID string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Memo not found",
			"requestID": requestID,
		})

	case errors.Is(err, service.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Guest session expired. Please start a new one",
			"requestID": requestID,
		})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Memo service call failed", zap.Error(err), zap.String("requestID", requestID))
	}
}

// Package admin contains the administrator endpoints
package admin

import (
	"net/http"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/session"

	"github.com/gin-gonic/gin"
)

// AdminCheck tells the front end whether to show the admin dashboard
func AdminCheck(c *gin.Context, d *internal.Deps) {
	sess := c.MustGet(session.ContextKey).(session.Session)

	c.JSON(http.StatusOK, gin.H{
		"isAdmin": sess.IsAdmin,
	})
}

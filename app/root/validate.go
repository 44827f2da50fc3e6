package root

import (
	"net/http"

	"memoknot/memo-api/internal/session"

	"github.com/gin-gonic/gin"
)

// Validate confirms the caller's token still resolves to a session
func Validate(c *gin.Context) {
	sess := c.MustGet(session.ContextKey).(session.Session)

	c.JSON(http.StatusOK, gin.H{
		"userID":  sess.UserID,
		"isGuest": sess.IsGuest,
	})
}

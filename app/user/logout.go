package user

import (
	"net/http"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/guest"
	"memoknot/memo-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// UserLogout clears the session cookies. A guest signing out loses their
// local memos, so the guest state is torn down here too; the front end is
// expected to have confirmed that with the user.
func UserLogout(c *gin.Context, d *internal.Deps) {
	if tokenStr, err := c.Cookie("auth_token"); err == nil {
		if sess, err := middleware.ResolveSession(d.DB, tokenStr); err == nil && sess.IsGuest {
			guest.NewStore(d.KV, sess.UserID).ClearAll()
		}
	}

	clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out",
	})
}

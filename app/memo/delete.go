package memo

import (
	"net/http"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/session"

	"github.com/gin-gonic/gin"
)

func MemoDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	sess := c.MustGet(session.ContextKey).(session.Session)

	memoID := c.Param("id")
	if memoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No memo ID provided",
			"requestID": requestID,
		})
		return
	}

	if err := d.Memos.Delete(sess, memoID); err != nil {
		serviceError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Memo deleted",
	})
}

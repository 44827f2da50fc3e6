package memo

import (
	"net/http"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/session"

	"github.com/gin-gonic/gin"
)

func MemoFetch(c *gin.Context, d *internal.Deps) {
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

	m, err := d.Memos.Get(sess, memoID)
	if err != nil {
		serviceError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

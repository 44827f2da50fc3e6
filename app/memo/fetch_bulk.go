package memo

import (
	"net/http"
	"strconv"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/service"
	"memoknot/memo-api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// MemoFetchBulk returns one page of the caller's memos. Pagination is cursor
// based: cursor is the id of the last memo of the previous page and the
// response carries a nextCursor while a full page came back.
func MemoFetchBulk(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	sess := c.MustGet(session.ContextKey).(session.Session)

	limit := viper.GetInt("memo.page_limit")
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Limit must be a positive number",
				"requestID": requestID,
			})
			return
		}

		if parsed > viper.GetInt("memo.max_page_limit") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Limit is too big",
				"requestID": requestID,
			})
			return
		}

		limit = parsed
	}

	page, err := d.Memos.List(sess, service.ListOptions{
		Query:  c.Query("query"),
		Cursor: c.Query("cursor"),
		Limit:  limit,
	})
	if err != nil {
		serviceError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

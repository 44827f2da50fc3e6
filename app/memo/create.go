package memo

import (
	"net/http"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/session"
	"memoknot/memo-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

func MemoCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	sess := c.MustGet(session.ContextKey).(session.Session)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.MemoValidator(data.Title, data.Content, data.Images); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	m, err := d.Memos.Create(sess, data.Title, data.Content, data.Images)
	if err != nil {
		serviceError(c, requestID, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

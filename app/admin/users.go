package admin

import (
	"net/http"
	"time"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type adminUserRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	MemoCount int64     `json:"memo_count"`
}

// AdminUserList returns all accounts with their memo counts, newest first
func AdminUserList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var rows []adminUserRow

	err := d.DB.
		Model(model.User{}).
		Select("users.id, users.email, users.name, users.is_admin, users.created_at, count(memos.id) as memo_count").
		Joins("left join memos on memos.user_id = users.id").
		Group("users.id").
		Order("users.created_at desc").
		Scan(&rows).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, rows)
}

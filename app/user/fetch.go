package user

import (
	"net/http"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/guest"
	"memoknot/memo-api/internal/model"
	"memoknot/memo-api/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFetch returns the caller's profile and memo count. Works for both
// session kinds; a guest gets the generated identity record back.
func UserFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	sess := c.MustGet(session.ContextKey).(session.Session)

	if sess.IsGuest {
		store := guest.NewStore(d.KV, sess.UserID)

		u, err := store.GuestUser()
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Guest session expired. Please start a new one",
				"requestID": requestID,
			})
			return
		}

		memos, err := store.Memos()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to read guest memos", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":      u,
			"isGuest":   true,
			"memoCount": len(memos),
		})
		return
	}

	var user model.User
	if err := d.DB.Where("id = ?", sess.UserID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var memoCount int64
	if err := d.DB.Model(model.Memo{}).Where("user_id = ?", sess.UserID).Count(&memoCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count user memos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"isGuest":   false,
		"memoCount": memoCount,
	})
}

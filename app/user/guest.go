package user

import (
	"net/http"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/guest"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GuestStart opens a guest session: a fresh guest identity in the key-value
// store plus a guest-typed token cookie. No account is created anywhere.
func GuestStart(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	sid, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate guest session ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	store := guest.NewStore(d.KV, sid)
	u, err := store.CreateGuestUser()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create guest user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ttl := viper.GetDuration("guest.session_ttl")

	token, err := makeGuestToken(sid, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate guest token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setAuthCookies(c, sid, token, int(ttl.Seconds()))
	c.JSON(http.StatusCreated, u)
}

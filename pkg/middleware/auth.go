package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"memoknot/memo-api/internal/model"
	"memoknot/memo-api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewAuthMiddleware resolves the auth_token cookie into a typed Session and
// stores it in the gin context. Guest tokens stand on their own; credential
// tokens are checked against the users table so deleted accounts can't keep
// using old tokens.
func NewAuthMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No auth_token cookie",
				"requestID": requestID,
			})
			return
		}

		sess, err := ResolveSession(d, tokenStr)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error":     "User not found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected auth token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set(session.ContextKey, sess)
		c.Next()
	}
}

// ResolveSession parses and validates a signed token string into a Session.
// Also used by the login/registration handlers to pick up a pre-login guest
// session from the cookie.
func ResolveSession(d *gorm.DB, tokenStr string) (session.Session, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil {
		return session.Session{}, err
	}

	if !token.Valid {
		return session.Session{}, errors.New("token invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session.Session{}, errors.New("unexpected claims shape")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return session.Session{}, errors.New("missing user_id claim")
	}

	kind, _ := claims["type"].(string)

	switch kind {
	case "guest":
		return session.Session{UserID: userID, IsGuest: true}, nil

	case "auth":
		var user model.User
		if err := d.Where("id = ?", userID).First(&user).Error; err != nil {
			return session.Session{}, err
		}

		return session.Session{
			UserID:  user.ID,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		}, nil

	default:
		return session.Session{}, fmt.Errorf("unknown token type %q", kind)
	}
}

// RequireAdmin rejects non-admin sessions. Must run after the auth middleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)
		sess := c.MustGet(session.ContextKey).(session.Session)

		if !sess.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Admin only",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}

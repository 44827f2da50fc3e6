// Package user contains account and session endpoints
package user

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const authTokenMaxAge = 60 * 60 * 24 * 30 // 30 days

func makeToken(c *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

func makeAuthToken(userID string) (string, error) {
	return makeToken(&jwt.MapClaims{
		"user_id": userID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})
}

func makeGuestToken(sessionID string, ttl time.Duration) (string, error) {
	return makeToken(&jwt.MapClaims{
		"user_id": sessionID,
		"type":    "guest",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	})
}

func setAuthCookies(c *gin.Context, userID, authToken string, maxAge int) {
	ssl := viper.GetBool("host.ssl_enabled")

	c.SetCookie("user_id", userID, maxAge, "/", "", ssl, false)
	c.SetCookie("auth_token", authToken, maxAge, "/", "", ssl, true)
	c.SetCookie("logged_in", "1", maxAge, "/", "", ssl, false)
}

func clearAuthCookies(c *gin.Context) {
	ssl := viper.GetBool("host.ssl_enabled")

	c.SetCookie("user_id", "", -1, "/", "", ssl, false)
	c.SetCookie("auth_token", "", -1, "/", "", ssl, true)
	c.SetCookie("logged_in", "", -1, "/", "", ssl, false)
}

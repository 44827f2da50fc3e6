// Package app wires up the HTTP surface of the memo service
package app

import (
	"fmt"
	"time"

	"memoknot/memo-api/app/admin"
	"memoknot/memo-api/app/memo"
	"memoknot/memo-api/app/root"
	"memoknot/memo-api/app/user"
	"memoknot/memo-api/db"
	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/service"
	"memoknot/memo-api/pkg/kvstore"
	"memoknot/memo-api/pkg/middleware"
	"memoknot/memo-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	makeLogger()

	conn, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	argon := security.New()

	if err := db.SeedAdmin(conn, argon, viper.GetString("admin.email"), viper.GetString("admin.password")); err != nil {
		return nil, err
	}

	kv := kvstore.NewMemory()

	d := &internal.Deps{
		DB:    conn,
		KV:    kv,
		Argon: argon,
		Memos: service.NewMemoService(conn, kv),
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	auth := middleware.NewAuthMiddleware(conn)
	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/heartbeat		-> Same, for clients that can't HEAD
		m.GET("/heartbeat", cacheFor(15), root.Heartbeat)

		// GET /api/validate		-> Validates a session token
		m.GET("/validate", auth, root.Validate)
	}

	u := m.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the caller's profile and memo count
		u.GET("", auth, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users 		-> Registers a new user, transferring guest memos
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user, transferring guest memos
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/users/logout	-> Clears the session, tearing down guest data
		u.POST("/logout", func(c *gin.Context) { user.UserLogout(c, d) })
	}

	g := m.Group("/guests")
	{
		// POST /api/guests		-> Starts a guest session
		g.POST("", func(c *gin.Context) { user.GuestStart(c, d) })
	}

	mm := m.Group("/memos", auth, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/memos		-> Lists the caller's memos with search + cursor pagination
		mm.GET("", func(c *gin.Context) { memo.MemoFetchBulk(c, d) })

		// POST /api/memos		-> Creates a new memo
		mm.POST("", func(c *gin.Context) { memo.MemoCreate(c, d) })

		// GET /api/memos/:id		-> Returns a memo by its ID if the caller owns it
		mm.GET("/:id", func(c *gin.Context) { memo.MemoFetch(c, d) })

		// PUT /api/memos/:id		-> Updates a memo's title and content
		mm.PUT("/:id", func(c *gin.Context) { memo.MemoEdit(c, d) })

		// DELETE /api/memos/:id	-> Deletes a memo owned by the caller
		mm.DELETE("/:id", func(c *gin.Context) { memo.MemoDelete(c, d) })
	}

	a := m.Group("/admin", auth)
	{
		// GET /api/admin/check		-> Tells the caller whether they are an admin
		a.GET("/check", func(c *gin.Context) { admin.AdminCheck(c, d) })

		// GET /api/admin/users		-> Lists all accounts with memo counts
		a.GET("/users", middleware.RequireAdmin(), func(c *gin.Context) { admin.AdminUserList(c, d) })

		// POST /api/admin/users/:id/reset-password -> Resets a user's password
		a.POST("/users/:id/reset-password", middleware.RequireAdmin(), func(c *gin.Context) { admin.AdminResetPassword(c, d) })
	}

	// Evict guest sessions nobody touched for a while
	service.GuestCleanup(
		viper.GetDuration("guest.cleanup_interval"),
		viper.GetDuration("guest.session_ttl"),
		kv,
	)

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}

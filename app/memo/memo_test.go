package memo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"memoknot/memo-api/internal"
	"memoknot/memo-api/internal/model"
	"memoknot/memo-api/internal/service"
	"memoknot/memo-api/pkg/kvstore"
	"memoknot/memo-api/pkg/middleware"
	"memoknot/memo-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *internal.Deps) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	viper.Set("jwt.secret", "test-secret")
	viper.Set("memo.page_limit", 9)
	viper.Set("memo.max_page_limit", 100)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(model.User{}, model.Memo{}))

	kv := kvstore.NewMemory()
	d := &internal.Deps{
		DB:    conn,
		KV:    kv,
		Argon: security.New(),
		Memos: service.NewMemoService(conn, kv),
	}

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())

	auth := middleware.NewAuthMiddleware(conn)
	g := r.Group("/api/memos", auth)
	g.GET("", func(c *gin.Context) { MemoFetchBulk(c, d) })
	g.POST("", func(c *gin.Context) { MemoCreate(c, d) })
	g.GET("/:id", func(c *gin.Context) { MemoFetch(c, d) })
	g.PUT("/:id", func(c *gin.Context) { MemoEdit(c, d) })
	g.DELETE("/:id", func(c *gin.Context) { MemoDelete(c, d) })

	return r, d
}

func createUser(t *testing.T, d *internal.Deps, id string) {
	t.Helper()

	require.NoError(t, d.DB.Create(&model.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "irrelevant",
	}).Error)
}

func signToken(t *testing.T, userID string) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMemoCreate_EmptyTitleRejected(t *testing.T) {
	r, d := setupRouter(t)
	createUser(t, d, "user_a")
	token := signToken(t, "user_a")

	w := doRequest(t, r, http.MethodPost, "/api/memos", token, `{"title":"","content":"something"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, d.DB.Model(model.Memo{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMemoCreate_NoSession(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/memos", "", `{"title":"t","content":"c"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMemoFetch_CrossOwnerLooksAbsent(t *testing.T) {
	r, d := setupRouter(t)
	createUser(t, d, "user_x")
	createUser(t, d, "user_y")

	w := doRequest(t, r, http.MethodPost, "/api/memos", signToken(t, "user_y"), `{"title":"y's memo","content":"private"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Memo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(t, r, http.MethodGet, "/api/memos/"+created.ID, signToken(t, "user_x"), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemoList_PaginatesWithCursor(t *testing.T) {
	r, d := setupRouter(t)
	createUser(t, d, "user_a")
	token := signToken(t, "user_a")

	for i := 0; i < 10; i++ {
		ts := int64(1_000_000 + i*1000)
		require.NoError(t, d.DB.Create(&model.Memo{
			ID:        fmt.Sprintf("memo_%d", i),
			UserID:    "user_a",
			Title:     fmt.Sprintf("Memo %d", i),
			Content:   "content",
			CreatedAt: ts,
			UpdatedAt: ts,
		}).Error)
	}

	var first struct {
		Memos      []model.Memo `json:"memos"`
		NextCursor string       `json:"nextCursor"`
	}

	w := doRequest(t, r, http.MethodGet, "/api/memos?limit=9", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.Len(t, first.Memos, 9)
	require.NotEmpty(t, first.NextCursor)

	var second struct {
		Memos      []model.Memo `json:"memos"`
		NextCursor string       `json:"nextCursor"`
	}

	w = doRequest(t, r, http.MethodGet, "/api/memos?limit=9&cursor="+first.NextCursor, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	require.Len(t, second.Memos, 1)
	assert.Empty(t, second.NextCursor)
}

func TestMemoEdit_And_Delete(t *testing.T) {
	r, d := setupRouter(t)
	createUser(t, d, "user_a")
	token := signToken(t, "user_a")

	w := doRequest(t, r, http.MethodPost, "/api/memos", token, `{"title":"before","content":"old"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Memo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(t, r, http.MethodPut, "/api/memos/"+created.ID, token, `{"title":"after","content":"new"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Memo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "after", updated.Title)

	w = doRequest(t, r, http.MethodDelete, "/api/memos/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/memos/"+created.ID, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemoList_RejectsBadLimit(t *testing.T) {
	r, d := setupRouter(t)
	createUser(t, d, "user_a")
	token := signToken(t, "user_a")

	w := doRequest(t, r, http.MethodGet, "/api/memos?limit=-1", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/memos?limit=9999", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

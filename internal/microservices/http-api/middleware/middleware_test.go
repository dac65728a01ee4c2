package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yamdb/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type countingLimiter struct {
	allowed int
	keys    []string
}

func (l *countingLimiter) Allow(_ context.Context, key string) bool {
	l.keys = append(l.keys, key)
	if l.allowed == 0 {
		return false
	}
	l.allowed--
	return true
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ping", func(c *gin.Context) {
		Logger(c).Info("inside")
		c.Status(http.StatusTeapot)
	})

	w := serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {"req-42"}})

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"msg":"inside","request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"msg":"http_request"`)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)

	w = serve(r, http.MethodGet, "/ping", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := &countingLimiter{allowed: 1}

	r := gin.New()
	r.POST("/signup", RateLimit(limiter, "signup"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/signup", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/signup", nil).Code)
	assert.Equal(t, "signup:192.0.2.1", limiter.keys[0])
}

func TestRateLimit_NilLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signup", RateLimit(nil, "signup"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/signup", nil).Code)
	}
}

func TestGates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	admin := &models.User{ID: "a", Role: models.RoleAdmin}
	superuser := &models.User{ID: "s", Role: models.RoleUser, IsSuperuser: true}
	moderator := &models.User{ID: "m", Role: models.RoleModerator}

	tests := []struct {
		name   string
		gate   gin.HandlerFunc
		method string
		user   *models.User
		want   int
	}{
		{"auth anonymous", RequireAuthenticated(), http.MethodGet, nil, http.StatusUnauthorized},
		{"auth user", RequireAuthenticated(), http.MethodGet, moderator, http.StatusOK},
		{"admin moderator", RequireAdmin(), http.MethodGet, moderator, http.StatusForbidden},
		{"admin superuser", RequireAdmin(), http.MethodGet, superuser, http.StatusOK},
		{"read-only anonymous read", AdminOrReadOnly(), http.MethodGet, nil, http.StatusOK},
		{"read-only anonymous write", AdminOrReadOnly(), http.MethodPost, nil, http.StatusUnauthorized},
		{"read-only moderator write", AdminOrReadOnly(), http.MethodDelete, moderator, http.StatusForbidden},
		{"read-only admin write", AdminOrReadOnly(), http.MethodPost, admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.user != nil {
					SetUser(c, tt.user)
				}
				c.Next()
			})
			r.Handle(tt.method, "/x", tt.gate, func(c *gin.Context) { c.Status(http.StatusOK) })

			assert.Equal(t, tt.want, serve(r, tt.method, "/x", nil).Code)
		})
	}
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Timeout(time.Minute))
	r.GET("/x", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/x", nil).Code)
}

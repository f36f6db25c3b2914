package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/gym-backend/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func hit(r http.Handler, method, path string, mod func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:4321"
	if mod != nil {
		mod(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	mr, rdb := newRedis(t)
	r := gin.New()
	r.Use(RealIP())
	r.POST("/api/login", RateLimit(rdb, 2, time.Minute, KeyByIPAndPath(), nil), ok)

	assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/api/login", nil).Code)
	w := hit(r, http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit(r, http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"rate_limited"`)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	other := hit(r, http.MethodPost, "/api/login", func(req *http.Request) { req.Header.Set("X-Forwarded-For", "198.51.100.1") })
	assert.Equal(t, http.StatusOK, other.Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/api/login", nil).Code)
}

func TestRateLimit_BypassAndFailOpen(t *testing.T) {
	mr, rdb := newRedis(t)
	r := gin.New()
	r.Use(RealIP())
	r.POST("/limited", RateLimit(rdb, 1, time.Minute, KeyByIP(), AllowPrivateIP()), ok)

	local := func(req *http.Request) { req.RemoteAddr = "10.0.0.5:1000" }
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/limited", local).Code)
	}

	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/limited", nil).Code)
	}
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/x", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), ok)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/x", nil).Code)
	}
}

func TestJWTAuth(t *testing.T) {
	jm := helpers.NewJWTManager("test-secret", time.Minute, "gym-backend")
	token, _, err := jm.GenerateAccessToken("u-1")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/me", JWTAuth(jm), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxUserIDKey)) })

	w := hit(r, http.MethodGet, "/api/me", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())

	w = hit(r, http.MethodGet, "/api/me", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: token})
	})
	assert.Equal(t, "u-1", w.Body.String())

	w = hit(r, http.MethodGet, "/api/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := helpers.NewJWTManager("other-secret", time.Minute, "gym-backend")
	forged, _, err := other.GenerateAccessToken("u-1")
	require.NoError(t, err)
	w = hit(r, http.MethodGet, "/api/me", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+forged) })
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"unauthorized"`)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := hit(r, http.MethodGet, "/x", nil)
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	w = hit(r, http.MethodGet, "/x", func(req *http.Request) { req.Header.Set(RequestIDHeader, incoming) })
	assert.Equal(t, incoming, w.Body.String())

	w = hit(r, http.MethodGet, "/x", func(req *http.Request) { req.Header.Set(RequestIDHeader, "not-a-uuid") })
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	cases := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "198.51.100.9", "X-Forwarded-For": "192.0.2.1"}, "198.51.100.9"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "192.0.2.1, 10.0.0.1"}, "192.0.2.1"},
		{"real ip header", map[string]string{"X-Real-IP": "192.0.2.44"}, "192.0.2.44"},
		{"garbage falls back", map[string]string{"X-Forwarded-For": "nope"}, "203.0.113.7"},
		{"no headers", nil, "203.0.113.7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := hit(r, http.MethodGet, "/ip", func(req *http.Request) {
				for k, v := range tc.header {
					req.Header.Set(k, v)
				}
			})
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	echo "github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, mw)
	return e
}

func hit(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware_LimitsPerIP(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	// a wide window keeps the test away from window boundaries
	e := newEcho(RateLimitMiddleware(RateLimitConfig{
		Redis:          rdb,
		RPS:            2,
		Window:         time.Hour,
		RetryAfterHint: true,
	}))

	assert.Equal(t, http.StatusOK, hit(e, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit(e, "10.0.0.1").Code)

	rec := hit(e, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(e, "10.0.0.2").Code)
}

func TestRateLimitMiddleware_Burst(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := newEcho(RateLimitMiddleware(RateLimitConfig{Redis: rdb, RPS: 1, Burst: 1, Window: time.Hour}))

	assert.Equal(t, http.StatusOK, hit(e, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit(e, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(e, "10.0.0.1").Code)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	e := newEcho(RateLimitMiddleware(RateLimitConfig{Redis: rdb, RPS: 1, Window: time.Hour}))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(e, "10.0.0.1").Code)
	}
}

func TestRateLimitMiddleware_DisabledWithoutRedis(t *testing.T) {
	e := newEcho(RateLimitMiddleware(RateLimitConfig{RPS: 1}))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(e, "10.0.0.1").Code)
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	e := newEcho(APIKeyMiddleware("k"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", " k ")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	open := newEcho(APIKeyMiddleware(""))
	rec = httptest.NewRecorder()
	open.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

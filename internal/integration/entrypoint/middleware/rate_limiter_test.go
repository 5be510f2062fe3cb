package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newTestRouter(t *testing.T, maxAttempts int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiterWithConfig(client, "test:login", maxAttempts, window)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, mr
}

func doRequest(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests under the limit", func(t *testing.T) {
		router, _ := newTestRouter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			if code := doRequest(router); code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, code)
			}
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		router, _ := newTestRouter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			doRequest(router)
		}
		if code := doRequest(router); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after limit, got %d", code)
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		router, mr := newTestRouter(t, 2, time.Minute)

		doRequest(router)
		doRequest(router)
		if code := doRequest(router); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 before expiry, got %d", code)
		}

		mr.FastForward(2 * time.Minute)

		if code := doRequest(router); code != http.StatusOK {
			t.Fatalf("expected 200 after window expiry, got %d", code)
		}
	})
}

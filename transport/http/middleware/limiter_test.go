package middleware_test

import (
	"booktable/config"
	"booktable/infras/otel/mocks"
	"booktable/shared/cache"
	"booktable/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimited(t *testing.T, enable bool, maxRequests int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache.NewRedisCache(client, mocks.NewOtel()))

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return app.Tracing(app.RateLimit()(ok)), server
}

func request(handler http.Handler, clientIP string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/customer/search", nil)
	req.Header.Set("X-Forwarded-For", clientIP+", 10.0.0.1")
	req.Header.Set("User-Agent", "test-agent")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestRateLimit(t *testing.T) {
	t.Run("blocks after the window is used up", func(t *testing.T) {
		handler, _ := newLimited(t, true, 2)

		first := request(handler, "203.0.113.7")
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusOK, request(handler, "203.0.113.7").Code)
		assert.Equal(t, http.StatusTooManyRequests, request(handler, "203.0.113.7").Code)

		assert.Equal(t, http.StatusOK, request(handler, "198.51.100.1").Code)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		handler, server := newLimited(t, true, 1)

		assert.Equal(t, http.StatusOK, request(handler, "203.0.113.7").Code)
		assert.Equal(t, http.StatusTooManyRequests, request(handler, "203.0.113.7").Code)

		server.FastForward(61 * time.Second)

		assert.Equal(t, http.StatusOK, request(handler, "203.0.113.7").Code)
	})

	t.Run("cache outage lets requests through", func(t *testing.T) {
		handler, server := newLimited(t, true, 1)
		server.Close()

		rec := request(handler, "203.0.113.7")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("disabled", func(t *testing.T) {
		handler, _ := newLimited(t, false, 0)

		for range 3 {
			assert.Equal(t, http.StatusOK, request(handler, "203.0.113.7").Code)
		}
	})
}

package httpapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newLimitedRouter(t *testing.T, cfg RateLimiterConfig) (http.Handler, *RateLimiter) {
	t.Helper()
	limiter := NewRateLimiter(log.New(os.Stderr), cfg)
	t.Cleanup(limiter.Stop)

	r := chi.NewRouter()
	r.With(limiter.Middleware).Post("/user/{userID}/message", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r, limiter
}

func post(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BucketsPerUser(t *testing.T) {
	cfg := DefaultRateLimiterConfig()
	cfg.Rate = rate.Limit(0.001)
	cfg.Burst = 1
	router, limiter := newLimitedRouter(t, cfg)

	require.Equal(t, http.StatusOK, post(router, "/user/u1/message").Code)
	assert.Equal(t, http.StatusTooManyRequests, post(router, "/user/u1/message").Code)

	// A different user draws from a separate bucket.
	assert.Equal(t, http.StatusOK, post(router, "/user/u2/message").Code)
	assert.Equal(t, 2, limiter.LimiterCount())
}

func TestRateLimiter_CleanupEvictsIdleBuckets(t *testing.T) {
	cfg := DefaultRateLimiterConfig()
	cfg.CleanupInterval = time.Hour
	cfg.MaxIdle = 0
	router, limiter := newLimitedRouter(t, cfg)

	require.Equal(t, http.StatusOK, post(router, "/user/u1/message").Code)
	require.Equal(t, 1, limiter.LimiterCount())

	// MaxIdle of zero makes every existing bucket stale immediately.
	limiter.cleanup()
	assert.Zero(t, limiter.LimiterCount())
}

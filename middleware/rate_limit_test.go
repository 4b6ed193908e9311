package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/andyle182810/checkoutpage/middleware"
	"github.com/andyle182810/checkoutpage/testutil"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func serve(e *echo.Echo, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func newRateLimitedEcho(clock *fakeClock) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler()
	e.Use(middleware.BearerAuth("sk_a", "sk_b"))
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{ //nolint:exhaustruct
		Limit: rate.Limit(1),
		Burst: 2,
		Now:   clock.Now,
	}))
	e.GET("/v1/payments/", echoSuccessHandler)

	return e
}

func TestRateLimit_RejectsWhenBucketIsEmpty(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{mu: sync.Mutex{}, now: time.Unix(1_700_000_000, 0)}
	e := newRateLimitedEcho(clock)
	headers := map[string]string{middleware.HeaderAuthorization: "Bearer sk_a"}

	first := serve(e, http.MethodGet, "/v1/payments/", headers)
	testutil.AssertStatusCode(t, first, http.StatusOK)
	testutil.AssertHeader(t, first, middleware.HeaderRateLimitLimit, "2")
	testutil.AssertHeader(t, first, middleware.HeaderRateLimitRemaining, "1")
	testutil.AssertHeader(t, first, middleware.HeaderRateLimitReset, "0")

	second := serve(e, http.MethodGet, "/v1/payments/", headers)
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, "0", second.Header().Get(middleware.HeaderRateLimitRemaining))
	require.Equal(t, "1", second.Header().Get(middleware.HeaderRateLimitReset))

	third := serve(e, http.MethodGet, "/v1/payments/", headers)
	testutil.AssertErrorResponse(t, third, http.StatusTooManyRequests, "Rate limit exceeded")
	testutil.AssertHeader(t, third, middleware.HeaderRetryAfter, "1")

	clock.Advance(time.Second)

	fourth := serve(e, http.MethodGet, "/v1/payments/", headers)
	require.Equal(t, http.StatusOK, fourth.Code)
}

func TestRateLimit_BucketsPerAPIKey(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{mu: sync.Mutex{}, now: time.Unix(1_700_000_000, 0)}
	e := newRateLimitedEcho(clock)

	for range 2 {
		rec := serve(e, http.MethodGet, "/v1/payments/", map[string]string{middleware.HeaderAuthorization: "Bearer sk_a"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	exhausted := serve(e, http.MethodGet, "/v1/payments/", map[string]string{middleware.HeaderAuthorization: "Bearer sk_a"})
	require.Equal(t, http.StatusTooManyRequests, exhausted.Code)

	other := serve(e, http.MethodGet, "/v1/payments/", map[string]string{middleware.HeaderAuthorization: "Bearer sk_b"})
	require.Equal(t, http.StatusOK, other.Code)
}

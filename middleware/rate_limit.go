package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	Skipper middleware.Skipper
	// Limit is the sustained number of requests per second per key.
	Limit rate.Limit
	Burst int
	// KeyFunc buckets requests. Defaults to the authenticated API key, then
	// the client IP.
	KeyFunc func(*echo.Context) string
	Now     func() time.Time
}

type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}

	return limiter
}

// RateLimit applies a token bucket per key. Every response carries the
// X-Ratelimit-* headers; rejected requests get 429 and Retry-After.
func RateLimit(config RateLimitConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.KeyFunc == nil {
		config.KeyFunc = defaultRateLimitKey
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	if config.Burst <= 0 {
		config.Burst = 1
	}

	store := &limiterStore{
		mu:       sync.Mutex{},
		limiters: make(map[string]*rate.Limiter),
		limit:    config.Limit,
		burst:    config.Burst,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			now := config.Now()
			limiter := store.get(config.KeyFunc(ctx))
			allowed := limiter.AllowN(now, 1)
			tokens := limiter.TokensAt(now)

			header := ctx.Response().Header()
			header.Set(HeaderRateLimitLimit, strconv.Itoa(config.Burst))
			header.Set(HeaderRateLimitRemaining, strconv.Itoa(max(int(math.Floor(tokens)), 0)))
			header.Set(HeaderRateLimitReset, strconv.Itoa(secondsUntilToken(tokens, config.Limit)))

			if !allowed {
				header.Set(HeaderRetryAfter, strconv.Itoa(max(secondsUntilToken(tokens, config.Limit), 1)))

				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
			}

			return next(ctx)
		}
	}
}

func secondsUntilToken(tokens float64, limit rate.Limit) int {
	if tokens >= 1 {
		return 0
	}

	if limit <= 0 {
		return math.MaxInt32
	}

	return int(math.Ceil((1 - tokens) / float64(limit)))
}

func defaultRateLimitKey(ctx *echo.Context) string {
	if key := GetAPIKey(ctx); key != "" {
		return "key:" + key
	}

	return "ip:" + ctx.RealIP()
}

package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/apperror"
)

// RateLimiter is a fixed-window counter in redis, keyed per client.
type RateLimiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
	log    *zap.Logger
}

func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{redis: rdb, prefix: prefix, limit: limit, window: window, log: log}
}

// ByIP limits requests per client IP. With no redis client configured the
// middleware is a no-op, so the API still works in single-box deployments
// without redis.
func (r *RateLimiter) ByIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r == nil || r.redis == nil {
			return c.Next()
		}
		key := fmt.Sprintf("%s:%s", r.prefix, c.IP())
		count, err := r.redis.Incr(c.Context(), key).Result()
		if err != nil {
			// a broken limiter must not take the endpoint down with it
			r.log.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			r.redis.Expire(c.Context(), key, r.window)
		}
		if count > int64(r.limit) {
			return apperror.New(apperror.KindRateLimited, "common.rate_limited")
		}
		return c.Next()
	}
}

package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request limiter backed by Redis.
type RateLimiter struct {
	Redis  *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

func NewRateLimiter(r *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window}
}

// ByIP limits requests per client IP.
func (r *RateLimiter) ByIP() fiber.Handler {
	return r.ByKey(func(c *fiber.Ctx) string { return c.IP() })
}

// ByKey limits requests per arbitrary key.
func (r *RateLimiter) ByKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		redisKey := fmt.Sprintf("%s:%s", r.Prefix, keyFunc(c))
		ctx := c.UserContext()

		count, err := r.Redis.Incr(ctx, redisKey).Result()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "rate limiter error",
			})
		}
		if count == 1 {
			r.Redis.Expire(ctx, redisKey, r.Window)
		}
		if count > int64(r.Limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

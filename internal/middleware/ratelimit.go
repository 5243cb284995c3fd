package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lablink/backend/internal/http/dto"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware throttles API traffic per client IP and path using a
// fixed redis window. Redis being unreachable must not take the API down, so
// any redis error lets the request through.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "lablink:ratelimit:" + c.IP() + ":" + c.Path()

		ctx := context.Background()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			reqID, _ := c.Locals(CtxRequestID).(string)
			c.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error:     "rate limit exceeded",
				RequestID: reqID,
			})
		}

		return c.Next()
	}
}

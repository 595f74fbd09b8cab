package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"bmxhive/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when the limiter's Redis
// backend is unreachable.
type FailPolicy int

const (
	// FailOpen lets the request through without counting it.
	FailOpen FailPolicy = iota
	// FailClosed rejects the request with 503.
	FailClosed
)

var errNoLimiterStore = errors.New("rate limit store unavailable")

// CheckRateLimit counts one hit against the (resource, id) bucket and
// reports whether the caller is still within limit. Limits only apply
// outside test/development so local workflows are never throttled.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development":
		return true, nil
	}

	if rdb == nil {
		return false, errNoLimiterStore
	}

	key := "ratelimit:" + resource + ":" + id

	// INCR and EXPIRE run as one round trip; NX keeps the window anchored
	// to the bucket's first hit.
	pipe := rdb.TxPipeline()
	hits := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return hits.Val() <= int64(limit), nil
}

// RateLimit enforces limit requests per window per caller, keyed by the
// authenticated rider when present and by remote IP otherwise. Store
// failures fail open.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, name ...string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, name...)
}

// RateLimitWithPolicy is RateLimit with an explicit store failure policy.
// The optional name overrides the route path as the bucket resource so
// aliased routes share one budget.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, name ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := "ip:" + c.IP()
		if uid, ok := c.Locals("userID").(uint); ok {
			id = fmt.Sprintf("rider:%d", uid)
		}

		resource := c.Path()
		if len(name) > 0 {
			resource = name[0]
		}

		allowed, err := CheckRateLimit(c.UserContext(), rdb, resource, id, limit, window)
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limiter unavailable, rejecting",
					slog.String("resource", resource), slog.String("error", err.Error()))
				return models.RespondWithError(c, fiber.StatusServiceUnavailable,
					models.NewInternalError(err))
			}
			Logger.WarnContext(c.UserContext(), "rate limiter unavailable, allowing",
				slog.String("resource", resource), slog.String("error", err.Error()))
			return c.Next()
		}

		if !allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitedError())
		}
		return c.Next()
	}
}

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"multiverse_backend/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter. Counters live in Redis when it
// is configured and reachable, otherwise in process memory.
type RateLimiter struct {
	client *redis.Client
	local  *localCounter
}

// NewRateLimiter connects to Redis at addr. An empty addr or a failed ping
// leaves the limiter on its in-process counters so the server stays available.
func NewRateLimiter(addr, password string, db int) *RateLimiter {
	rl := &RateLimiter{local: newLocalCounter()}
	if addr == "" {
		logger.Info("redis not configured, rate limiting in process")
		return rl
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, rate limiting in process", "addr", addr, "error", err)
		_ = client.Close()
		return rl
	}

	logger.Info("redis rate limiter connected", "addr", addr)
	rl.client = client
	return rl
}

// Close releases the Redis connection, if any.
func (rl *RateLimiter) Close() error {
	if rl.client == nil {
		return nil
	}
	return rl.client.Close()
}

// Limit allows maxRequests per window per client IP within scope.
// key format: rl:<scope>:<window_seconds>:<ip>
func (rl *RateLimiter) Limit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	windowSecs := strconv.FormatInt(int64(window.Seconds()), 10)
	return func(c *gin.Context) {
		key := "rl:" + scope + ":" + windowSecs + ":" + c.ClientIP()

		val, err := rl.hit(c.Request.Context(), key, window)
		if err != nil {
			// fail-open on Redis errors
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(scope).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Too many requests",
				"code":        "rate_limited",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues(scope).Inc()
		c.Next()
	}
}

func (rl *RateLimiter) hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if rl.client == nil {
		return rl.local.hit(key, window, time.Now()), nil
	}

	val, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if val == 1 {
		// first increment, set expiry
		rl.client.Expire(ctx, key, window)
	}
	return val, nil
}

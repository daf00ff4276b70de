package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware throttles authenticated endpoints with a sliding
// window kept in redis. Built with a nil client it is a pass-through, so the
// service runs fine without redis.
type RateLimitMiddleware struct {
	client *redis.Client
}

func NewRateLimitMiddleware(client *redis.Client) *RateLimitMiddleware {
	return &RateLimitMiddleware{client: client}
}

// RateLimit allows at most `requests` calls per user per endpoint within
// `window`.
func (rm *RateLimitMiddleware) RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rm.client == nil {
			c.Next()
			return
		}

		user, err := GetUserFromContext(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx := c.Request.Context()
		now := time.Now()
		key := fmt.Sprintf("rate_limit:%s:%s", user.ID, c.Request.URL.Path)

		pipe := rm.client.Pipeline()
		pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now.Add(-window).Unix()))
		count := pipe.ZCard(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			// Rate limiting is best-effort; a broken redis must not take
			// voting down with it.
			c.Next()
			return
		}

		if count.Val() >= int64(requests) {
			// Rejected requests are not recorded, so a throttled client's
			// retries cannot extend their own throttle.
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("too many requests, limit is %d per %v", requests, window),
			})
			return
		}

		record := rm.client.Pipeline()
		record.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
		record.Expire(ctx, key, window)
		if _, err := record.Exec(ctx); err != nil {
			c.Next()
			return
		}
		c.Next()
	}
}

package utils

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter on Redis, keyed by client IP and route.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())

		count, err := rl.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis being down must not take uploads down with it
			log.Printf("[RATELIMIT] redis error: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(c.Request.Context(), key, rl.window)
		}

		if count > int64(rl.limit) {
			ttl, err := rl.client.TTL(c.Request.Context(), key).Result()
			retryAfter := rl.window
			if err == nil && ttl > 0 {
				retryAfter = ttl
			}
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": "rate limit exceeded, slow down",
			})
			return
		}

		c.Next()
	}
}

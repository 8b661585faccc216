package middleware

import (
	"Fitboard/internal/pkg/redis"
	"Fitboard/internal/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
)

const rateLimitWindow = time.Minute

// RateLimitMiddleware 基于 Redis 的固定窗口限流，按客户端 IP 计数。
// limit <= 0 时不限流。
func RateLimitMiddleware(keyPrefix string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := keyPrefix + c.ClientIP()
		count, err := redis.IncrWindow(c.Request.Context(), key, rateLimitWindow)
		if err != nil {
			// Redis 不可用时直接放行
			c.Next()
			return
		}
		if count > int64(limit) {
			response.Fail(c, response.TooManyRequests, "请求过于频繁，请稍后重试")
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentledger/internal/pkg/ratelimit"
	"rentledger/internal/pkg/response"
)

// RateLimit allows limit requests per window for each client IP under prefix.
func RateLimit(limiter *ratelimit.Limiter, prefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := limiter.Allow(ratelimit.Key(prefix, c.Request), limit, window)
		if res.Limited {
			retry := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			response.Abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, try again later")
			return
		}
		c.Next()
	}
}

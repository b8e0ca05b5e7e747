package middleware

import (
	"net/http"
	"sync"

	"urbanease-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AuthRateLimit throttles the public auth endpoints per client IP with a
// token bucket: burst requests, refilled at r per second.
func AuthRateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(r, burst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			utils.RespondError(c, http.StatusTooManyRequests, "Too many attempts, please wait a moment")
			c.Abort()
			return
		}
		c.Next()
	}
}

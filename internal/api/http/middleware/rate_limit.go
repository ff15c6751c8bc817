package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies a per-client-IP token bucket to the public
// explorer routes. Idle entries are evicted so the limiter map stays
// bounded.
func RateLimitMiddleware(rps rate.Limit, burst int) gin.HandlerFunc {
	type entry struct {
		limiter *rate.Limiter
		seen    time.Time
	}

	var mu sync.Mutex
	limiters := map[string]*entry{}
	lastSweep := time.Now()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		if time.Since(lastSweep) > 10*time.Minute {
			for k, e := range limiters {
				if time.Since(e.seen) > 10*time.Minute {
					delete(limiters, k)
				}
			}
			lastSweep = time.Now()
		}
		e, ok := limiters[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(rps, burst)}
			limiters[ip] = e
		}
		e.seen = time.Now()
		mu.Unlock()

		if !e.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

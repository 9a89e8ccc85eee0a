package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxTrackedIPs bounds the limiter map; the attendant tablets and the
// mobile app produce a small, stable set of client IPs, so hitting the
// bound means something is scanning us and a reset is acceptable.
const maxTrackedIPs = 10000

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu  sync.Mutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

// GetLimiter returns the rate limiter for an IP address, creating it on
// first sight.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if limiter, ok := i.ips[ip]; ok {
		return limiter
	}
	if len(i.ips) >= maxTrackedIPs {
		i.ips = make(map[string]*rate.Limiter)
	}
	limiter := rate.NewLimiter(i.r, i.b)
	i.ips[ip] = limiter
	return limiter
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

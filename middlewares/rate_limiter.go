package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeremiapane/foodcourt/utils"
)

// RateLimiter is a sliding-window limiter keyed by client IP.
type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		rate:     limit,
		interval: interval,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.RespondJSON(c, http.StatusTooManyRequests, "Too many requests", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.interval)
	valid := make([]time.Time, 0, len(rl.ips[ip])+1)
	for _, t := range rl.ips[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.rate {
		rl.ips[ip] = valid
		return false
	}
	rl.ips[ip] = append(valid, now)
	return true
}

// Prune forgets clients with no request inside the window.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.interval)
	n := 0
	for ip, hits := range rl.ips {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(rl.ips, ip)
			n++
		}
	}
	return n
}

// StrictLimiter is a token bucket per client IP for signup and login.
type StrictLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

// NewStrictRateLimiter allows burst attempts, refilled one per interval.
func NewStrictRateLimiter(interval time.Duration, burst int) *StrictLimiter {
	return &StrictLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(interval),
		burst:    burst,
	}
}

func (sl *StrictLimiter) limiter(ip string) *rate.Limiter {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	l, ok := sl.limiters[ip]
	if !ok {
		l = rate.NewLimiter(sl.every, sl.burst)
		sl.limiters[ip] = l
	}
	return l
}

func (sl *StrictLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sl.limiter(c.ClientIP()).Allow() {
			utils.RespondJSON(c, http.StatusTooManyRequests, "Too many attempts, please wait a moment", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Prune drops buckets that have refilled completely.
func (sl *StrictLimiter) Prune() int {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	n := 0
	for ip, l := range sl.limiters {
		if l.Tokens() >= float64(sl.burst) {
			delete(sl.limiters, ip)
			n++
		}
	}
	return n
}

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window rate limiter, per client IP ──────────────────────────────────

type rateEntry struct {
	count     int
	windowEnd time.Time
}

type rateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*rateEntry
	limit     int
	window    time.Duration
	nextPurge time.Time
	now       func() time.Time
}

// RateLimiter allows limit requests per window per client IP. A limit <= 0
// disables it.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{entries: map[string]*rateEntry{}, limit: limit, window: window, now: time.Now}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	allowed, retryAfter := rl.allow(c.ClientIP())
	if !allowed {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Too many requests, please retry later"))
		return
	}
	c.Next()
}

func (rl *rateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.purge(now)

	e, ok := rl.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &rateEntry{windowEnd: now.Add(rl.window)}
		rl.entries[ip] = e
	}
	e.count++
	if e.count > rl.limit {
		return false, e.windowEnd.Sub(now)
	}
	return true, 0
}

// purge drops expired windows at most once per window so that IPs that never
// come back do not accumulate. Caller holds mu.
func (rl *rateLimiter) purge(now time.Time) {
	if now.Before(rl.nextPurge) {
		return
	}
	rl.nextPurge = now.Add(rl.window)

	purged := 0
	for ip, e := range rl.entries {
		if now.After(e.windowEnd) {
			delete(rl.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(rl.entries)).Msg("rate limiter purged")
	}
}

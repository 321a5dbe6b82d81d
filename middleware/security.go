package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SecurityHeaders adds the standard response hardening headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Next()
	}
}

// CORS allows the SPA origin with credentials.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// clientLimiter tracks one token bucket per client IP, pruning idle entries.
type clientLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientEntry
	limit    rate.Limit
	burst    int
	lifetime time.Duration
	stopChan chan struct{}
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(limit rate.Limit, burst int) *clientLimiter {
	cl := &clientLimiter{
		clients:  make(map[string]*clientEntry),
		limit:    limit,
		burst:    burst,
		lifetime: 10 * time.Minute,
		stopChan: make(chan struct{}),
	}
	go cl.prune()
	return cl
}

func (cl *clientLimiter) prune() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cl.removeIdle()
		case <-cl.stopChan:
			return
		}
	}
}

func (cl *clientLimiter) removeIdle() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	for ip, entry := range cl.clients {
		if time.Since(entry.lastSeen) > cl.lifetime {
			delete(cl.clients, ip)
		}
	}
}

func (cl *clientLimiter) stop() {
	close(cl.stopChan)
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	entry, ok := cl.clients[ip]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func rateLimitWith(cl *clientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			ip = c.Request.RemoteAddr
		}
		if !cl.allow(ip) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "too many requests",
				"code":    "rate_limited",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimit is the general per-client request limiter.
func RateLimit() gin.HandlerFunc {
	return rateLimitWith(newClientLimiter(rate.Limit(20), 40))
}

// AuthRateLimit is the stricter bucket applied to credential endpoints.
func AuthRateLimit() gin.HandlerFunc {
	return rateLimitWith(newClientLimiter(rate.Limit(1), 5))
}

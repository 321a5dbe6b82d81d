package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestClientLimiterRemovesIdleEntries(t *testing.T) {
	cl := newClientLimiter(rate.Limit(1), 1)
	defer cl.stop()

	cl.allow("192.0.2.1")
	cl.allow("192.0.2.2")

	cl.mu.Lock()
	cl.clients["192.0.2.1"].lastSeen = time.Now().Add(-time.Hour)
	cl.mu.Unlock()

	cl.removeIdle()

	cl.mu.Lock()
	defer cl.mu.Unlock()
	_, stale := cl.clients["192.0.2.1"]
	_, fresh := cl.clients["192.0.2.2"]
	assert.False(t, stale)
	assert.True(t, fresh)
}

func TestAuthRateLimitBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", AuthRateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	var last int
	for i := 0; i < 6; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "198.51.100.7:4242"
		router.ServeHTTP(w, req)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// A different client keeps its own bucket.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.8:4242"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

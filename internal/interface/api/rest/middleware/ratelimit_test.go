package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"file-drive-api/internal/domain/identity"
)

func TestRateLimiter_PerCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, 2)
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		if sub := c.GetHeader("X-Test-User"); sub != "" {
			c.Set(CtxIdentity, &identity.Identity{TokenIdentifier: "iss|" + sub})
		}
		c.Next()
	}, rl.Handler(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	do := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusCreated, do("alice"))
	assert.Equal(t, http.StatusCreated, do("alice"))
	assert.Equal(t, http.StatusTooManyRequests, do("alice"))

	assert.Equal(t, http.StatusCreated, do("bob"))

	assert.Equal(t, http.StatusCreated, do(""))
	assert.Equal(t, http.StatusCreated, do(""))
	assert.Equal(t, http.StatusTooManyRequests, do(""))
}

func TestNewRateLimiter_ClampsConfig(t *testing.T) {
	rl := NewRateLimiter(0, -3)
	assert.Equal(t, 1, rl.burst)
	assert.True(t, rl.limiter("k").Allow())
}

func TestRateLimiter_SweepsIdleCallers(t *testing.T) {
	start := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	now := start

	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }
	rl.lastSweep = start

	rl.limiter("ip:10.0.0.1")
	rl.limiter("ip:10.0.0.2")
	assert.Len(t, rl.visitors, 2)

	now = start.Add(idleTTL / 2)
	rl.limiter("ip:10.0.0.2")

	now = start.Add(idleTTL)
	rl.limiter("ip:10.0.0.3")

	assert.Len(t, rl.visitors, 2)
	assert.NotContains(t, rl.visitors, "ip:10.0.0.1")
	assert.Contains(t, rl.visitors, "ip:10.0.0.2")
	assert.Contains(t, rl.visitors, "ip:10.0.0.3")
}

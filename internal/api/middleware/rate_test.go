package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doGet(r *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitIsPerIP(t *testing.T) {
	r := newLimitedRouter(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))

	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "10.0.0.1:1111"))

	// A different client has its own budget.
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.2:2222"))
}

func TestGlobalRateLimitSharesBudget(t *testing.T) {
	r := newLimitedRouter(GlobalRateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 2}))

	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.2:2222"))

	// The budget is shared, a third caller is rejected regardless of IP.
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "10.0.0.3:3333"))
}

func TestRateLimitDefaultsWhenUnconfigured(t *testing.T) {
	r := newLimitedRouter(GlobalRateLimit(RateLimitConfig{}))
	assert.Equal(t, http.StatusOK, doGet(r, "10.0.0.1:1111"))
}

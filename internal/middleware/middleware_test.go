package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"aegnt-unltd/pkg/log"
)

func newEngine(mw Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.RequestID())
	r.POST("/process", mw.RateLimit(), func(c *gin.Context) {
		c.String(http.StatusOK, log.RequestID(c.Request.Context()))
	})
	return r
}

func post(r http.Handler, ip, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/process", nil)
	req.RemoteAddr = ip + ":1234"
	if requestID != "" {
		req.Header.Set(HeaderRequestID, requestID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newEngine(New(log.NewNop(), 0))

	w := post(r, "10.0.0.1", "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	w = post(r, "10.0.0.1", "")
	minted := w.Header().Get(HeaderRequestID)
	assert.Len(t, minted, 36)
	assert.Equal(t, minted, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	// 60/min gives a burst of 6
	r := newEngine(New(log.NewNop(), 60))

	for i := 0; i < 6; i++ {
		assert.Equal(t, http.StatusOK, post(r, "10.0.0.1", "").Code, "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1", "").Code)
	assert.Equal(t, http.StatusOK, post(r, "10.0.0.2", "").Code, "other clients keep their budget")
}

func TestRateLimit_Disabled(t *testing.T) {
	r := newEngine(New(log.NewNop(), 0))

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, post(r, "10.0.0.1", "").Code)
	}
}

func TestRateLimiter_SmallBudgetStillAllowsOne(t *testing.T) {
	rl := newRateLimiter(5)

	assert.NoError(t, rl.Allow("a"))
	assert.Error(t, rl.Allow("a"))
}

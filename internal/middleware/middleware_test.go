package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "fasting/backend/internal/errors"
)

type staticTokens map[string]string

func (s staticTokens) ParseToken(token string) (string, *apperrors.APIError) {
	if userID, ok := s[token]; ok {
		return userID, nil
	}
	return "", apperrors.Unauthorized("invalid token")
}

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", Auth(staticTokens{"good": "user-1"}), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return engine
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	engine := newAuthEngine()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestAuthRejectsBadHeaders(t *testing.T) {
	engine := newAuthEngine()

	for name, header := range map[string]string{
		"missing":     "",
		"wrong type":  "Basic good",
		"empty token": "Bearer   ",
		"unknown":     "Bearer bad",
	} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestAuthQueryTokenOnlyForWebsocket(t *testing.T) {
	engine := newAuthEngine()

	req := httptest.NewRequest(http.MethodGet, "/me?access_token=good", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/me?access_token=good", nil)
	req.Header.Set("Upgrade", "websocket")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterPerClient(t *testing.T) {
	limiter := NewRateLimiter(60, 2)
	now := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("b"), "clients have separate buckets")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("a"), "one token refills per second at 60/min")
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	now = now.Add(limiterIdleTTL + time.Second)
	limiter.Allow("b")
	assert.NotContains(t, limiter.visitors, "a")
}

func TestOriginChecker(t *testing.T) {
	check := OriginChecker([]string{"http://localhost:8081"})

	req := httptest.NewRequest(http.MethodGet, "/api/fast/live", nil)
	assert.True(t, check(req), "non-browser clients send no origin")

	req.Header.Set("Origin", "http://localhost:8081")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))

	assert.True(t, OriginChecker([]string{"*"})(req))
}

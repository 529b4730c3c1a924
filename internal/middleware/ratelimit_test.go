package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLimiter struct {
	rate int
	hits map[string]int
	err  error
}

func (c *countingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	c.hits[key]++
	return c.hits[key] <= c.rate, nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func request(remote string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	r.RemoteAddr = remote
	return r
}

func TestRateLimit_BlocksAfterBudget(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	l := &countingLimiter{rate: 2, hits: map[string]int{}}
	h := RateLimit(l, logger)(okHandler)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request("203.0.113.9:51000"))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, request("203.0.113.9:51001"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many login attempts, try again later"}`, w.Body.String())

	assert.Equal(t, 3, l.hits["203.0.113.9"], "port is not part of the key")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	l := &countingLimiter{err: errors.New("redis: connection refused")}
	h := RateLimit(l, logger)(okHandler)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, request("203.0.113.9:51000"))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "rate limiter unavailable", hook.LastEntry().Message)
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "203.0.113.9", clientIP(request("203.0.113.9:1234")))
	assert.Equal(t, "203.0.113.9", clientIP(request("203.0.113.9")))
	assert.Equal(t, "2001:db8::1", clientIP(request("[2001:db8::1]:443")))
}

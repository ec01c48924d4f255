package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/audit", nil)
	req.RemoteAddr = remoteAddr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(60, 10, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware()(okHandler())

	for i := 0; i < 10; i++ {
		rec := doRequest(handler, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverBurst(t *testing.T) {
	rl := NewRateLimiter(6, 5, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware()(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1234").Code)
	}

	rec := doRequest(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_SameIPDifferentPorts(t *testing.T) {
	rl := NewRateLimiter(6, 1, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware()(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "1.2.3.4:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "1.2.3.4:2000").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(6, 2, time.Minute)
	defer rl.Stop()

	handler := rl.Middleware()(okHandler())

	for i := 0; i < 2; i++ {
		doRequest(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusOK, doRequest(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(600, 1, time.Minute)
	defer rl.Stop()

	// 600 per minute = one token every 100ms
	handler := rl.Middleware()(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "3.3.3.3:1234").Code)

	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, http.StatusOK, doRequest(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(60, 1, time.Minute)
	rl.Stop()
	rl.Stop()
}

package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2})
	handler := rl.Middleware(okHandler())

	send := func(ip string) int {
		req := httptest.NewRequest("POST", "/query", http.NoBody)
		req.RemoteAddr = ip + ":5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if send("10.0.0.1") != http.StatusOK || send("10.0.0.1") != http.StatusOK {
		t.Fatal("burst should pass")
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("third request: got %d, want 429", code)
	}
	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client: got %d, want 200", code)
	}
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, IdleAfter: time.Minute})
	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.Allow("a")

	rl.now = func() time.Time { return now.Add(2 * time.Minute) }
	rl.Allow("b")
	rl.evict()

	if _, ok := rl.clients["a"]; ok {
		t.Error("idle client not evicted")
	}
	if _, ok := rl.clients["b"]; !ok {
		t.Error("active client evicted")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := clientIP(req); got != "192.0.2.1" {
		t.Errorf("remote addr: got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Errorf("forwarded: got %q", got)
	}
}

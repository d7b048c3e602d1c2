// internal/api/middleware_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newRateLimitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimitByIP(limit, window), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRateLimitCutoff(t *testing.T) {
	router := newRateLimitedRouter(2, time.Minute)

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		return w
	}

	first := get()
	if first.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", first.Code)
	}
	if got := first.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Fatalf("expected 1 remaining after first request, got %q", got)
	}

	second := get()
	if second.Code != http.StatusOK {
		t.Fatalf("second request should pass, got %d", second.Code)
	}
	if got := second.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected 0 remaining after second request, got %q", got)
	}

	third := get()
	if third.Code != http.StatusTooManyRequests {
		t.Fatalf("third request should be rejected, got %d", third.Code)
	}
	if got := third.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("rejected request should report 0 remaining, got %q", got)
	}

	var body ErrorResponse
	if err := json.Unmarshal(third.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body.Error == nil || body.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Fatalf("unexpected error body: %s", third.Body.String())
	}
}

func TestRateLimitWindowReset(t *testing.T) {
	router := newRateLimitedRouter(1, 20*time.Millisecond)

	get := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := get(); code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", code)
	}
	if code := get(); code != http.StatusTooManyRequests {
		t.Fatalf("request over the limit should be rejected, got %d", code)
	}

	time.Sleep(30 * time.Millisecond)

	if code := get(); code != http.StatusOK {
		t.Fatalf("request after window reset should pass, got %d", code)
	}
}

func TestRateLimitersAreIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/a", RateLimitByIP(1, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "a")
	})
	r.GET("/b", RateLimitByIP(1, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "b")
	})

	get := func(path string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := get("/a"); code != http.StatusOK {
		t.Fatalf("first request to /a should pass, got %d", code)
	}
	if code := get("/a"); code != http.StatusTooManyRequests {
		t.Fatalf("second request to /a should be rejected, got %d", code)
	}
	if code := get("/b"); code != http.StatusOK {
		t.Fatalf("exhausting /a must not affect /b, got %d", code)
	}
}

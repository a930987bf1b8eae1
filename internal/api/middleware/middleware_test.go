package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock Limiter ──

type mockLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	m.keys = append(m.keys, key)
	return m.allowed, m.err
}

// ── Mock RequestObserver ──

type observed struct {
	method, path string
	status       int
}

type mockObserver struct {
	calls []observed
}

func (m *mockObserver) ObserveRequest(method, path string, status int, _ time.Duration) {
	m.calls = append(m.calls, observed{method: method, path: path, status: status})
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name     string
		limiter  *mockLimiter
		limit    int
		wantCode int
	}{
		{"allowed", &mockLimiter{allowed: true}, 5, http.StatusOK},
		{"rejected", &mockLimiter{allowed: false}, 5, http.StatusTooManyRequests},
		{"limiter error degrades", &mockLimiter{err: errors.New("redis down")}, 5, http.StatusOK},
		{"limit disabled", &mockLimiter{allowed: false}, 0, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/export/pdf", RateLimit(tt.limiter, tt.limit, time.Minute, zap.NewNop()), okHandler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/export/pdf", nil))

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestRateLimit_KeyIncludesRoute(t *testing.T) {
	lim := &mockLimiter{allowed: true}
	r := gin.New()
	r.GET("/export/:format", RateLimit(lim, 1, time.Minute, zap.NewNop()), okHandler)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/export/pdf", nil))

	if len(lim.keys) != 1 || !strings.HasPrefix(lim.keys[0], "/export/:format:") {
		t.Errorf("unexpected keys %v", lim.keys)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, zap.NewNop()), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if seen != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("expected incoming id to be kept, got %q", seen)
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", requestIDMaxLen+1))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if len(seen) != 36 {
		t.Errorf("expected generated uuid, got %q", seen)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/x", okHandler)

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight: expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Errorf("expected allowed origin header")
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("unexpected allow origin for foreign origin")
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/x", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader("short")))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestMetrics(t *testing.T) {
	obs := &mockObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/days/:date", okHandler)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/days/2026-03-02", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nope", nil))

	if len(obs.calls) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs.calls))
	}
	if obs.calls[0].path != "/days/:date" || obs.calls[0].status != http.StatusOK {
		t.Errorf("unexpected first observation %+v", obs.calls[0])
	}
	if obs.calls[1].path != "unmatched" || obs.calls[1].status != http.StatusNotFound {
		t.Errorf("unexpected second observation %+v", obs.calls[1])
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/x", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "script-src 'none'") {
		t.Error("expected scripts to be disabled")
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterPerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := NewRateLimiter(ctx, 0.001, 2).Middleware(okHandler())

	request := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	tests := []struct {
		name string
		addr string
		want int
	}{
		{name: "first", addr: "10.0.0.1:1000", want: http.StatusOK},
		{name: "second within burst", addr: "10.0.0.1:1001", want: http.StatusOK},
		{name: "over burst", addr: "10.0.0.1:1002", want: http.StatusTooManyRequests},
		{name: "other client", addr: "10.0.0.2:1000", want: http.StatusOK},
		{name: "no port", addr: "10.0.0.3", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := request(tt.addr); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, 1)
	rl.getLimiter("10.0.0.1")
	rl.evictIdle(time.Now().Add(time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.limiters) != 0 {
		t.Errorf("%d limiters left after eviction", len(rl.limiters))
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(okHandler())

	preflight := httptest.NewRecorder()
	handler.ServeHTTP(preflight, httptest.NewRequest(http.MethodOptions, "/game", nil))
	if preflight.Code != http.StatusOK {
		t.Errorf("preflight status = %d", preflight.Code)
	}
	if preflight.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/game/abc", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Errorf("status = %d headers = %v", rec.Code, rec.Header())
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authguard "github.com/authguard/authguard"
)

func buildGuard(t *testing.T, maxAttempts int) *authguard.Guard {
	t.Helper()
	g, err := authguard.New().
		WithConfig(authguard.Config{
			RateLimit: authguard.RateLimitConfig{
				MaxAttempts:   maxAttempts,
				Window:        time.Minute,
				CleanupMaxAge: time.Hour,
			},
		}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAllowsUnderBudget(t *testing.T) {
	g := buildGuard(t, 3)
	h := RateLimitByIP(g)(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestRateLimitDeniesOverBudget(t *testing.T) {
	g := buildGuard(t, 2)
	h := RateLimitByIP(g)(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("warmup request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Fatalf("Retry-After = %q, want %q", got, "60")
	}
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	g := buildGuard(t, 1)
	h := RateLimitByIP(g)(okHandler())

	first := httptest.NewRecorder()
	reqA := httptest.NewRequest(http.MethodGet, "/login", nil)
	reqA.RemoteAddr = "10.0.0.3:5000"
	h.ServeHTTP(first, reqA)

	second := httptest.NewRecorder()
	reqB := httptest.NewRequest(http.MethodGet, "/login", nil)
	reqB.RemoteAddr = "10.0.0.4:5000"
	h.ServeHTTP(second, reqB)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d, want 200 for both clients", first.Code, second.Code)
	}
}

func TestRateLimitRejectsEmptyKey(t *testing.T) {
	g := buildGuard(t, 3)
	h := RateLimit(g, func(*http.Request) string { return "" })(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRateLimitNilGuardFailsClosed(t *testing.T) {
	h := RateLimitByIP(nil)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestClientIPStripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:31337"
	if got := ClientIP(req); got != "192.0.2.7" {
		t.Fatalf("ClientIP = %q, want %q", got, "192.0.2.7")
	}
}

func TestCleanQueryScrubsValues(t *testing.T) {
	g := buildGuard(t, 5)

	var seen string
	h := CleanQuery(g)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query().Get("q")
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/search?q="+"%3Cscript%3Ehi%3C%2Fscript%3E", nil)
	h.ServeHTTP(rec, req)

	if seen != "scripthi/script" {
		t.Fatalf("cleaned query = %q, want %q", seen, "scripthi/script")
	}
}

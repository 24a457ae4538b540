package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

func TestDefaultRateLimiterConfig(t *testing.T) {
	cfg := DefaultRateLimiterConfig()
	if cfg.RequestsPerSecond != 10 {
		t.Errorf("RequestsPerSecond = %f, want 10", cfg.RequestsPerSecond)
	}
	if cfg.Burst != 20 {
		t.Errorf("Burst = %d, want 20", cfg.Burst)
	}
	if cfg.CleanupInterval != 5*time.Minute {
		t.Errorf("CleanupInterval = %v, want 5m", cfg.CleanupInterval)
	}
}

func TestRateLimiterStore_GetLimiter(t *testing.T) {
	store := &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		config: RateLimiterConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
	}

	limiter1 := store.getLimiter("10.0.0.1")
	if limiter1 == nil {
		t.Error("expected limiter to be created")
	}

	limiter2 := store.getLimiter("10.0.0.1")
	if limiter1 != limiter2 {
		t.Error("expected same limiter to be returned")
	}

	limiter3 := store.getLimiter("10.0.0.2")
	if limiter1 == limiter3 {
		t.Error("expected different limiter for different key")
	}
}

func TestRateLimiterStore_PruneKeepsActiveClients(t *testing.T) {
	store := &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		config: RateLimiterConfig{
			RequestsPerSecond: 0.001,
			Burst:             2,
		},
	}

	store.getLimiter("idle")
	store.getLimiter("busy").Allow()

	if removed := store.prune(); removed != 1 {
		t.Errorf("prune() removed %d, want 1", removed)
	}
	if _, ok := store.limiters["busy"]; !ok {
		t.Error("expected busy client to keep its limiter")
	}
	if _, ok := store.limiters["idle"]; ok {
		t.Error("expected idle client to be pruned")
	}
}

func TestRateLimiter_AllowsRequests(t *testing.T) {
	e := echo.New()

	cfg := RateLimiterConfig{
		RequestsPerSecond: 100,
		Burst:             100,
		CleanupInterval:   time.Hour,
	}
	middleware := RateLimiter(cfg)

	handler := middleware(func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRateLimiter_BlocksExcessiveRequests(t *testing.T) {
	e := echo.New()

	cfg := RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   time.Hour,
	}
	middleware := RateLimiter(cfg)

	handler := middleware(func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		if i == 0 {
			if err != nil {
				t.Errorf("first request should succeed, got error: %v", err)
			}
			continue
		}
		if err == nil {
			continue
		}
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Errorf("expected echo.HTTPError, got %T", err)
			continue
		}
		if he.Code != http.StatusTooManyRequests {
			t.Errorf("request %d status = %d, want 429", i+1, he.Code)
		}
	}
}

func TestRateLimiter_KeysByClientIP(t *testing.T) {
	e := echo.New()

	cfg := RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   time.Hour,
	}
	middleware := RateLimiter(cfg)

	handler := middleware(func(c echo.Context) error {
		return c.String(http.StatusOK, "success")
	})

	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()

		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Errorf("first request for %s should succeed: %v", ip, err)
		}
	}
}

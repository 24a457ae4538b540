package dashboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(setupSeededStore(t, time.Now()), logger)
	e := echo.New()
	h.RegisterRoutes(e.Group(""))
	return h, e
}

func TestHandler_RegisterRoutes(t *testing.T) {
	_, e := newTestHandler(t)

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Path] = true
	}
	for _, path := range []string{"/metrics", "/alerts", "/users"} {
		if !routePaths[path] {
			t.Errorf("expected route %s to be registered", path)
		}
	}
}

func TestHandler_Endpoints(t *testing.T) {
	_, e := newTestHandler(t)

	tests := []struct {
		path string
		want int
	}{
		{"/metrics", 6},
		{"/alerts", 3},
		{"/users", 1},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			var items []map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestHandler_MetricValueShapes(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var metrics []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &metrics); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := metrics[0]["value"].(float64); !ok {
		t.Errorf("expected numeric value, got %T", metrics[0]["value"])
	}
	if _, ok := metrics[1]["value"].(string); !ok {
		t.Errorf("expected string value, got %T", metrics[1]["value"])
	}
	if _, ok := metrics[0]["position"]; ok {
		t.Error("position should not be serialized")
	}
}

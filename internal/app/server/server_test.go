package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"staffdesk/internal/platform/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	frontend := t.TempDir()
	if err := os.WriteFile(filepath.Join(frontend, "index.html"), []byte("<html>staffdesk</html>"), 0o600); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(frontend, "app.js"), []byte("console.log('ok')"), 0o600); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	return config.Config{
		Addr:                   ":0",
		Environment:            "test",
		FrontendDir:            frontend,
		JWTSecret:              "test-secret",
		SessionTTL:             time.Hour,
		SessionBackend:         config.SessionBackendMemory,
		SessionNamespace:       "staffdesk-test",
		MaxBodyBytes:           1 << 20,
		AuthRateLimitPerMinute: 1000,
		MetricsEnabled:         true,
		StatsRefreshSchedule:   "@every 1h",
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := New(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionBackend = "cookie"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected invalid config error")
	}
}

func TestNewRejectsBadSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.StatsRefreshSchedule = "whenever"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected schedule error")
	}
}

func TestNewLoadsEmbeddedSeed(t *testing.T) {
	app := newTestApp(t)
	if app.Store.Len() == 0 {
		t.Fatal("expected seed records")
	}
	if app.Gate.IsAuthenticated() {
		t.Fatal("expected fresh memory backend to start anonymous")
	}
}

func TestHealthAndReadiness(t *testing.T) {
	app := newTestApp(t)

	if rec := get(t, app.Router, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz: %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, app.Router, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("unexpected readyz: %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	_ = get(t, app.Router, "/healthz")

	rec := get(t, app.Router, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"staffdesk_http_requests_total", "staffdesk_employees ", "staffdesk_session_active"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = false
	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	rec := get(t, app.Router, "/metrics")
	if strings.Contains(rec.Body.String(), "staffdesk_http_requests_total") {
		t.Fatal("did not expect metrics output")
	}
}

func TestSPAFallback(t *testing.T) {
	app := newTestApp(t)

	if rec := get(t, app.Router, "/employees/42/edit"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "staffdesk") {
		t.Fatalf("expected index fallback, got %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(t, app.Router, "/app.js"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "console.log") {
		t.Fatalf("expected static asset, got %d", rec.Code)
	}
	if rec := get(t, app.Router, "/../../etc/passwd"); strings.Contains(rec.Body.String(), "root:") {
		t.Fatal("expected path traversal to stay inside the frontend dir")
	}
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	app := newTestApp(t)
	rec := get(t, app.Router, "/api/v1/payroll")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"not_found"`) {
		t.Fatalf("expected json error envelope, got %q", rec.Body.String())
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/api/v1/employees", "/api/v1/employees/1", "/api/v1/dashboard", "/api/v1/employees/export.pdf"} {
		if rec := get(t, app.Router, path); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	app := newTestApp(t)
	rec := get(t, app.Router, "/healthz")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected hardening and request id headers, got %v", rec.Header())
	}
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"staffdesk/internal/app/server"
	"staffdesk/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig() config.Config {
	return config.Config{
		Environment:            "test",
		FrontendDir:            "frontend/dist",
		JWTSecret:              "test-secret",
		SessionTTL:             time.Hour,
		SessionBackend:         config.SessionBackendMemory,
		SessionNamespace:       "journey",
		MaxBodyBytes:           1048576,
		AuthRateLimitPerMinute: 1000,
		StatsRefreshSchedule:   "@every 1h",
	}
}

func TestStaffJourney(t *testing.T) {
	app, err := server.New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	seeded := app.Store.Len()
	token := login(t, client, ts.URL, "admin@corp.io", "secret1")

	email := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	id := createEmployee(t, client, ts.URL, token, email)

	page := listEmployees(t, client, ts.URL, token, "journey-")
	if page.Total != 1 || len(page.Items) != 1 || int64(page.Items[0]["id"].(float64)) != id {
		t.Fatalf("expected created employee in filtered list, got %+v", page)
	}

	updateEmployee(t, client, ts.URL, token, id, email)

	dashboard := getDashboard(t, client, ts.URL, token)
	if int(dashboard["totalEmployees"].(float64)) != seeded+1 {
		t.Fatalf("expected %d employees on dashboard, got %v", seeded+1, dashboard["totalEmployees"])
	}

	doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, id), token, nil, http.StatusOK)
	doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, id), token, nil, http.StatusOK)
	doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, id), token, nil, http.StatusNotFound)

	if app.Store.Len() != seeded {
		t.Fatalf("expected %d employees after delete, got %d", seeded, app.Store.Len())
	}

	doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/auth/logout", token, nil, http.StatusOK)
	doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees", token, nil, http.StatusUnauthorized)
}

func TestSessionSurvivesRestart(t *testing.T) {
	redisAddr := os.Getenv("TEST_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	cfg := testConfig()
	cfg.SessionBackend = config.SessionBackendRedis
	cfg.RedisAddr = redisAddr
	cfg.SessionNamespace = fmt.Sprintf("journey-%d", time.Now().UnixNano())

	first, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(first.Router)
	token := login(t, ts.Client(), ts.URL, "admin@corp.io", "secret1")
	ts.Close()
	first.Close()

	second, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to restart app: %v", err)
	}
	defer second.Close()

	ts = httptest.NewServer(second.Router)
	defer ts.Close()
	doJSON(t, ts.Client(), http.MethodGet, ts.URL+"/api/v1/employees", token, nil, http.StatusOK)
	doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/v1/auth/logout", token, nil, http.StatusOK)
}

type listPage struct {
	Items []map[string]any `json:"items"`
	Total int              `json:"total"`
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK)
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func employeeForm(email string) map[string]any {
	return map[string]any{
		"firstName":  "Journey",
		"lastName":   "Tester",
		"email":      email,
		"phone":      "+44 20 7946 0000",
		"age":        31,
		"gender":     "male",
		"department": "Quality",
		"title":      "Tester",
		"role":       "user",
		"username":   "journey",
		"city":       "Leeds",
		"state":      "Yorkshire",
	}
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, email string) int64 {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/employees", token, employeeForm(email), http.StatusCreated)
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	id, _ := payload["id"].(float64)
	if id == 0 {
		t.Fatal("expected employee id")
	}
	return int64(id)
}

func updateEmployee(t *testing.T, client *http.Client, baseURL, token string, id int64, email string) {
	t.Helper()
	form := employeeForm(email)
	form["title"] = "Senior Tester"
	resp := doJSON(t, client, http.MethodPut, fmt.Sprintf("%s/api/v1/employees/%d", baseURL, id), token, form, http.StatusOK)
	var payload struct {
		Company struct {
			Title string `json:"title"`
		} `json:"company"`
		BloodGroup string `json:"bloodGroup"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if payload.Company.Title != "Senior Tester" || payload.BloodGroup != "O+" {
		t.Fatalf("unexpected updated employee: %+v", payload)
	}
}

func listEmployees(t *testing.T, client *http.Client, baseURL, token, query string) listPage {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, baseURL+"/api/v1/employees?q="+query, token, nil, http.StatusOK)
	var page listPage
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	return page
}

func getDashboard(t *testing.T, client *http.Client, baseURL, token string) map[string]any {
	t.Helper()
	resp := doJSON(t, client, http.MethodGet, baseURL+"/api/v1/dashboard", token, nil, http.StatusOK)
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode dashboard response: %v", err)
	}
	return payload
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, wantStatus int) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, url, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d (%v)", method, url, wantStatus, resp.StatusCode, env.Error)
	}
	return env
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleHealthReportsCounters(t *testing.T) {
	s := NewServer(0)
	s.hub.nextSeq()
	s.hub.nextSeq()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp.Status != "ok" || resp.Compiles != 2 || resp.Clients != 0 {
		t.Fatalf("unexpected health payload: %+v", resp)
	}
}

func TestHandleHealthRejectsNonGet(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestOriginAllowed(t *testing.T) {
	cases := map[string]bool{
		"":                         true,
		"file://":                  true,
		"http://localhost:3000":    true,
		"https://127.0.0.1:8420":   true,
		"http://evil.example.com":  false,
		"https://attacker.io:8420": false,
	}
	for origin, want := range cases {
		if got := originAllowed(origin); got != want {
			t.Errorf("originAllowed(%q) = %v, want %v", origin, got, want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/compile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("expected the origin reflected, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSRejectsRemoteOrigin(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()

	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("expected no CORS header for a remote origin")
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/regaudit-backend/internal/config"
)

func corsConfig(origins string, credentials bool) config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   "GET,POST,PUT,OPTIONS",
		AllowedHeaders:   "Authorization,Content-Type,X-Request-Id",
		AllowCredentials: credentials,
		MaxAge:           600,
	}
}

func TestCORS_Preflight(t *testing.T) {
	wrapped := CORS(corsConfig("https://audit.example.com", true))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("preflight must not reach the handler")
		}),
	)

	req := httptest.NewRequest(http.MethodOptions, "/audit/bulk", nil)
	req.Header.Set("Origin", "https://audit.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":      "https://audit.example.com",
		"Access-Control-Allow-Methods":     "GET,POST,PUT,OPTIONS",
		"Access-Control-Allow-Headers":     "Authorization,Content-Type,X-Request-Id",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Max-Age":           "600",
		"Vary":                             "Origin",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name        string
		allowed     string
		credentials bool
		origin      string
		wantOrigin  string
		wantCreds   string
	}{
		{"listed origin", "https://audit.example.com, https://admin.example.com", true, "https://admin.example.com", "https://admin.example.com", "true"},
		{"unlisted origin", "https://audit.example.com", true, "https://evil.example.net", "", ""},
		{"wildcard echoes origin", "*", false, "https://anywhere.example.org", "https://anywhere.example.org", ""},
		{"no origin header", "*", true, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			wrapped := CORS(corsConfig(tt.allowed, tt.credentials))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			if !called {
				t.Error("simple requests must reach the handler")
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.wantCreds)
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/Abi/Transform", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowOrigin(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *CORSConfig
		origin     string
		wantOrigin string
		wantCreds  string
	}{
		{"nil config", nil, "http://example.com", "*", ""},
		{"wildcard", &CORSConfig{AllowedOrigins: []string{"*"}}, "http://example.com", "*", ""},
		{"empty list is wildcard", &CORSConfig{}, "http://example.com", "*", ""},
		{"wildcard with credentials", &CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}, "http://example.com", "http://example.com", "true"},
		{"listed origin", &CORSConfig{AllowedOrigins: []string{"http://a.test", "http://b.test"}}, "http://b.test", "http://b.test", ""},
		{"listed origin with credentials", &CORSConfig{AllowedOrigins: []string{"http://a.test"}, AllowCredentials: true}, "http://a.test", "http://a.test", "true"},
		{"unlisted origin", &CORSConfig{AllowedOrigins: []string{"http://a.test"}}, "http://evil.test", "", ""},
		{"no origin header", &CORSConfig{AllowedOrigins: []string{"http://a.test"}}, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(CORS(tt.cfg)(okHandler()), http.MethodPost, tt.origin)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("Access-Control-Allow-Credentials = %q, want %q", got, tt.wantCreds)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	cfg := &CORSConfig{
		AllowedOrigins: []string{"http://a.test"},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		MaxAge:         600,
	}
	w := serve(CORS(cfg)(next), http.MethodOptions, "http://a.test")

	if called {
		t.Error("preflight reached the wrapped handler")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":  "http://a.test",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, X-Request-Id",
		"Access-Control-Max-Age":       "600",
		"Vary":                         "Origin",
	}
	for k, v := range want {
		if got := w.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestCORS_PreflightDefaults(t *testing.T) {
	w := serve(CORS(nil)(okHandler()), http.MethodOptions, "http://example.com")

	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
		t.Errorf("Access-Control-Allow-Headers = %q, want %q", got, "Content-Type")
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "" {
		t.Errorf("Access-Control-Max-Age = %q, want empty", got)
	}
}

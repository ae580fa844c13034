package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// CORSConfig configures the CORS middleware. Empty lists fall back to the
// values of DefaultCORSConfig.
type CORSConfig struct {
	// AllowedOrigins lists the origins that may call the API.
	// "*" allows every origin.
	AllowedOrigins []string

	// AllowedMethods defaults to the methods the server routes: GET, POST and OPTIONS.
	AllowedMethods []string

	AllowedHeaders []string

	// AllowCredentials echoes the requesting origin instead of "*", since
	// browsers reject credentialed responses with a wildcard origin.
	AllowCredentials bool

	// MaxAge is how long, in seconds, browsers may cache a preflight
	// response. Zero omits the header.
	MaxAge int
}

// DefaultCORSConfig allows every origin to call the API without credentials.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}
}

// CORS returns HTTP middleware that answers preflight requests and sets the
// CORS headers on allowed responses. A nil cfg uses DefaultCORSConfig.
//
// It wraps the whole handler, so it is installed with App.WithMiddleware
// rather than as an interceptor.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	def := DefaultCORSConfig()
	if cfg == nil {
		cfg = def
	}
	origins := lo.Ternary(len(cfg.AllowedOrigins) > 0, cfg.AllowedOrigins, def.AllowedOrigins)
	methods := strings.Join(lo.Ternary(len(cfg.AllowedMethods) > 0, cfg.AllowedMethods, def.AllowedMethods), ", ")
	headers := strings.Join(lo.Ternary(len(cfg.AllowedHeaders) > 0, cfg.AllowedHeaders, def.AllowedHeaders), ", ")
	wildcard := lo.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()

			switch {
			case origin == "":
				if wildcard {
					h.Set("Access-Control-Allow-Origin", "*")
				}
			case wildcard && !cfg.AllowCredentials:
				h.Set("Access-Control-Allow-Origin", "*")
			case wildcard || lo.Contains(origins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// Package server exposes the generator over HTTP as a small RPC API.
//
// Endpoints are addressed as /{Service}/{Method}. Successful calls return
// {"result": ...}; failures return {"error": {"code", "message", "details"}}
// with a matching HTTP status.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
)

// App is the central router for API handlers.
// Use Handler() to get an http.Handler for use with http.ListenAndServe.
type App struct {
	mu                 sync.RWMutex
	routes             map[string]Endpoint
	errorTransformer   ErrorTransformer
	maskInternalErrors bool
	interceptors       []UnaryInterceptor
	middlewares        []func(http.Handler) http.Handler
	logger             *slog.Logger
	maxRequestBodySize uint64
}

// NewApp creates an App with a 1MB request body limit.
func NewApp() *App {
	return &App{
		routes:             make(map[string]Endpoint),
		maxRequestBodySize: 1 << 20,
	}
}

// WithErrorTransformer adds a custom error transformer.
func (a *App) WithErrorTransformer(fn ErrorTransformer) *App {
	a.errorTransformer = fn
	return a
}

// WithMaskInternalErrors replaces internal error messages with a generic
// one. The original error is still logged and seen by interceptors.
func (a *App) WithMaskInternalErrors() *App {
	a.maskInternalErrors = true
	return a
}

// WithUnaryInterceptor adds a global interceptor.
//
// Interceptor execution order:
//  1. Global interceptors (App.WithUnaryInterceptor)
//  2. Service interceptors (Service.WithUnaryInterceptor)
//  3. Handler interceptors (Handler.WithUnaryInterceptor)
//  4. Handler function
func (a *App) WithUnaryInterceptor(i UnaryInterceptor) *App {
	a.interceptors = append(a.interceptors, i)
	return a
}

// WithMiddleware adds an HTTP middleware to wrap the app.
// Middleware is applied in the order added (first added is outermost).
func (a *App) WithMiddleware(mw func(http.Handler) http.Handler) *App {
	a.middlewares = append(a.middlewares, mw)
	return a
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func (a *App) WithLogger(logger *slog.Logger) *App {
	a.logger = logger
	return a
}

// WithMaxRequestBodySize sets the default maximum request body size.
// A value of 0 means no limit.
func (a *App) WithMaxRequestBodySize(size uint64) *App {
	a.maxRequestBodySize = size
	return a
}

func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}

// Handler returns an http.Handler including all configured middleware.
func (a *App) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(a.serveHTTP)
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		h = a.middlewares[i](h)
	}
	return h
}

// Routes returns the registered endpoint IDs ("Service.Method"), sorted.
func (a *App) Routes() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	keys := make([]string, 0, len(a.routes))
	for k := range a.routes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Service returns a Service namespace.
func (a *App) Service(name string) *Service {
	return &Service{app: a, name: name}
}

func (a *App) serveHTTP(w http.ResponseWriter, req *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			a.log().Error("PANIC recovered",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))
			writeError(w, NewError(CodeInternal, fmt.Sprintf("internal server error (panic): %v", rec)), a.logger)
		}
	}()

	parts := strings.Split(strings.TrimPrefix(req.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, NewError(CodeNotFound, "route not found"), a.logger)
		return
	}
	service, method := parts[0], parts[1]

	a.mu.RLock()
	endpoint, ok := a.routes[service+"."+method]
	a.mu.RUnlock()
	if !ok {
		writeError(w, NewError(CodeNotFound, "route not found"), a.logger)
		return
	}

	if want := endpoint.HTTPMethod(); req.Method != want {
		w.Header().Set("Allow", want)
		writeError(w, Errorf(CodeMethodNotAllowed, "method %s not allowed, expected %s", req.Method, want), a.logger)
		return
	}

	ctx := newContext(req.Context(), w, req, service, method)
	ctx.errorTransformer = a.errorTransformer
	ctx.maskInternalErrors = a.maskInternalErrors
	ctx.interceptors = a.interceptors
	ctx.logger = a.logger
	ctx.maxRequestBodySize = a.maxRequestBodySize

	endpoint.serveHTTP(ctx)
}

// Service groups endpoints under one name.
type Service struct {
	app          *App
	name         string
	interceptors []UnaryInterceptor
}

// WithUnaryInterceptor adds an interceptor to this service.
func (s *Service) WithUnaryInterceptor(i UnaryInterceptor) *Service {
	s.interceptors = append(s.interceptors, i)
	return s
}

// Register registers an endpoint under the given method name. A duplicate
// registration replaces the earlier endpoint and logs a warning.
func (s *Service) Register(name string, endpoint Endpoint) {
	key := s.name + "." + name

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	if _, exists := s.app.routes[key]; exists {
		s.app.log().Warn("duplicate route registration",
			slog.String("service", s.name),
			slog.String("method", name),
			slog.String("route", key))
	}
	s.app.routes[key] = &serviceEndpoint{inner: endpoint, interceptors: s.interceptors}
}

// serviceEndpoint inserts the service interceptors after the global ones.
type serviceEndpoint struct {
	inner        Endpoint
	interceptors []UnaryInterceptor
}

func (e *serviceEndpoint) HTTPMethod() string {
	return e.inner.HTTPMethod()
}

func (e *serviceEndpoint) serveHTTP(ctx *rpcContext) {
	combined := make([]UnaryInterceptor, 0, len(ctx.interceptors)+len(e.interceptors))
	combined = append(combined, ctx.interceptors...)
	combined = append(combined, e.interceptors...)
	ctx.interceptors = combined
	e.inner.serveHTTP(ctx)
}

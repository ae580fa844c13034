package server

import (
	"context"
	"log/slog"
	"net/http"
)

// Context is the request context passed to interceptors and handlers.
// It carries the RPC identity and the underlying HTTP exchange.
type Context interface {
	context.Context

	// Service returns the service name, e.g. "Abi".
	Service() string

	// Method returns the method name, e.g. "Transform".
	Method() string

	// EndpointID returns "Service.Method".
	EndpointID() string

	// HTTPRequest returns the incoming request.
	HTTPRequest() *http.Request

	// HTTPWriter returns the response writer.
	HTTPWriter() http.ResponseWriter
}

type rpcContextKey struct{}

// rpcContext implements Context and carries the per-request configuration
// copied from the App.
type rpcContext struct {
	context.Context
	w       http.ResponseWriter
	r       *http.Request
	service string
	method  string

	errorTransformer   ErrorTransformer
	maskInternalErrors bool
	interceptors       []UnaryInterceptor
	logger             *slog.Logger
	maxRequestBodySize uint64
}

func newContext(ctx context.Context, w http.ResponseWriter, r *http.Request, service, method string) *rpcContext {
	return &rpcContext{
		Context: ctx,
		w:       w,
		r:       r,
		service: service,
		method:  method,
	}
}

func (c *rpcContext) Service() string                 { return c.service }
func (c *rpcContext) Method() string                  { return c.method }
func (c *rpcContext) EndpointID() string              { return c.service + "." + c.method }
func (c *rpcContext) HTTPRequest() *http.Request      { return c.r }
func (c *rpcContext) HTTPWriter() http.ResponseWriter { return c.w }

func (c *rpcContext) Value(key any) any {
	if key == (rpcContextKey{}) {
		return c
	}
	return c.Context.Value(key)
}

func (c *rpcContext) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// FromContext returns the RPC context from ctx, also when ctx was derived
// from it with context.WithValue or WithTimeout.
func FromContext(ctx context.Context) (Context, bool) {
	c, ok := ctx.Value(rpcContextKey{}).(*rpcContext)
	return c, ok
}

// SetHeader sets an HTTP response header. It is a no-op outside a request.
func SetHeader(ctx context.Context, key, value string) {
	if c, ok := FromContext(ctx); ok {
		c.HTTPWriter().Header().Set(key, value)
	}
}

// NewContext returns a Context that is not bound to an HTTP exchange, for
// calling interceptors directly in tests. HTTPRequest and HTTPWriter
// return nil.
func NewContext(ctx context.Context, service, method string) Context {
	return newContext(ctx, nil, nil, service, method)
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// Endpoint is a registered handler. It is sealed: create endpoints with
// Exec or Query.
type Endpoint interface {
	// HTTPMethod returns the method the endpoint accepts.
	HTTPMethod() string

	serveHTTP(ctx *rpcContext)
}

// Handler is an endpoint for a typed request/response pair.
type Handler[Req any, Res any] struct {
	fn                 func(context.Context, Req) (Res, error)
	httpMethod         string
	interceptors       []UnaryInterceptor
	maxRequestBodySize *uint64
}

// Exec creates a POST endpoint whose request is decoded from a JSON body.
func Exec[Req any, Res any](fn func(context.Context, Req) (Res, error)) *Handler[Req, Res] {
	return &Handler[Req, Res]{fn: fn, httpMethod: http.MethodPost}
}

// Query creates a GET endpoint whose request is decoded from the URL query
// using `schema` struct tags.
func Query[Req any, Res any](fn func(context.Context, Req) (Res, error)) *Handler[Req, Res] {
	return &Handler[Req, Res]{fn: fn, httpMethod: http.MethodGet}
}

// WithUnaryInterceptor adds an interceptor to this handler. Handler
// interceptors run after global and service interceptors.
func (h *Handler[Req, Res]) WithUnaryInterceptor(i UnaryInterceptor) *Handler[Req, Res] {
	h.interceptors = append(h.interceptors, i)
	return h
}

// WithMaxRequestBodySize overrides the app's body size limit. 0 disables it.
func (h *Handler[Req, Res]) WithMaxRequestBodySize(size uint64) *Handler[Req, Res] {
	h.maxRequestBodySize = &size
	return h
}

// HTTPMethod returns "POST" for Exec endpoints and "GET" for Query endpoints.
func (h *Handler[Req, Res]) HTTPMethod() string {
	return h.httpMethod
}

func (h *Handler[Req, Res]) serveHTTP(ctx *rpcContext) {
	req, err := h.decode(ctx)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	all := make([]UnaryInterceptor, 0, len(ctx.interceptors)+len(h.interceptors))
	all = append(all, ctx.interceptors...)
	all = append(all, h.interceptors...)

	final := func(c context.Context, reqAny any) (any, error) {
		typed, ok := reqAny.(Req)
		if !ok {
			return nil, Errorf(CodeInternal, "interceptor changed request type to %T", reqAny)
		}
		return h.fn(c, typed)
	}

	var res any
	if chain := chainInterceptors(all); chain != nil {
		res, err = chain(ctx, req, final)
	} else {
		res, err = final(ctx, req)
	}
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	ctx.w.Header().Set("Content-Type", "application/json")
	if err := encodeResponse(ctx.w, res); err != nil {
		// Response may be partially written.
		ctx.log().Error("failed to encode response",
			slog.String("endpoint", ctx.EndpointID()),
			slog.Any("error", err))
	}
}

// decode builds the request value. Pointer request types are allocated.
func (h *Handler[Req, Res]) decode(ctx *rpcContext) (Req, error) {
	var req Req
	target := any(&req)
	if t := reflect.TypeOf(req); t != nil && t.Kind() == reflect.Pointer {
		v := reflect.New(t.Elem())
		req = v.Interface().(Req)
		target = v.Interface()
	}

	if h.httpMethod == http.MethodGet {
		if err := schemaDecoder.Decode(target, ctx.r.URL.Query()); err != nil {
			return req, Errorf(CodeInvalidArgument, "failed to decode query: %v", err)
		}
	} else if ctx.r.Body != nil {
		body := io.Reader(ctx.r.Body)
		limit := ctx.maxRequestBodySize
		if h.maxRequestBodySize != nil {
			limit = *h.maxRequestBodySize
		}
		if limit > 0 {
			body = http.MaxBytesReader(ctx.w, ctx.r.Body, int64(limit))
		}
		if err := json.NewDecoder(body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return req, Errorf(CodeResourceExhausted, "request body exceeds %d bytes", tooLarge.Limit)
			}
			return req, Errorf(CodeInvalidArgument, "failed to decode body: %v", err)
		}
	}

	if err := validate.Struct(target); err != nil {
		return req, err
	}
	return req, nil
}

func (h *Handler[Req, Res]) handleError(ctx *rpcContext, err error) {
	var svcErr *Error
	if ctx.errorTransformer != nil {
		svcErr = ctx.errorTransformer(err)
	}
	if svcErr == nil {
		svcErr = DefaultErrorTransformer(err)
	}
	if ctx.maskInternalErrors && svcErr.Code == CodeInternal {
		ctx.log().Error("internal error",
			slog.String("endpoint", ctx.EndpointID()),
			slog.Any("error", err))
		svcErr = NewError(CodeInternal, "internal server error")
	}
	writeError(ctx.w, svcErr, ctx.logger)
}

package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/broady/abi2ts/server"
	"github.com/broady/abi2ts/server/middleware"
)

type Cmd struct {
	Listen             string        `help:"Address to listen on." short:"l" default:"localhost:8080"`
	MaxBodySize        uint64        `help:"Maximum request body size in bytes (0 for no limit)." default:"1048576"`
	MaskInternalErrors bool          `help:"Hide internal error messages from clients."`
	ShutdownTimeout    time.Duration `help:"How long to wait for in-flight requests on shutdown." default:"10s"`
	AllowOrigin        []string      `help:"Origins allowed to call the API from a browser (\"*\" for any). CORS is disabled when empty." placeholder:"ORIGIN"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", c.Listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return c.Serve(ctx, ln, logger)
}

// App builds the server application.
func (c *Cmd) App(logger *slog.Logger) *server.App {
	app := server.NewApp().
		WithLogger(logger).
		WithMaxRequestBodySize(c.MaxBodySize).
		WithUnaryInterceptor(middleware.LoggingInterceptor(logger))
	if c.MaskInternalErrors {
		app = app.WithMaskInternalErrors()
	}
	if len(c.AllowOrigin) > 0 {
		app = app.WithMiddleware(middleware.CORS(&middleware.CORSConfig{AllowedOrigins: c.AllowOrigin}))
	}
	server.Mount(app)
	return app
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (c *Cmd) Serve(ctx context.Context, ln net.Listener, logger *slog.Logger) error {
	app := c.App(logger)
	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	logger.Info("serving",
		slog.String("addr", ln.Addr().String()),
		slog.String("routes", strings.Join(app.Routes(), ",")))

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package http

import (
	"context"
	"countrycache/internal/config"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultShutdownTimeout = 10 * time.Second

// Start serves handler on cfg.Port until ctx is canceled, then drains in-flight
// requests within the configured shutdown timeout.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	return Serve(ctx, listener, cfg, handler)
}

// Serve is Start on an already bound listener.
func Serve(ctx context.Context, listener net.Listener, cfg config.HTTPServer, handler http.Handler) error {
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	errCh := make(chan error, 1)
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		timeout := cfg.ShutdownTimeout()
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		logrus.Infof("Shutting down http server, draining for up to %s", timeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case serveErr := <-errCh:
		return serveErr
	}
}

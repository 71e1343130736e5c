package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go-hr-dashboard-backend/pkg/logger"
)

// serve runs srv until a signal arrives on quit, then shuts it down within
// shutdownTimeout. A listener failure (port in use, bad address) is returned
// immediately instead of waiting for a signal.
func serve(srv *http.Server, quit <-chan os.Signal, shutdownTimeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-quit:
	}

	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

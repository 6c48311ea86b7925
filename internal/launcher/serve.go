package launcher

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/familiez/humans-service/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may run during a
// graceful restart or shutdown.
const shutdownTimeout = 10 * time.Second

// Serve runs an HTTP server for the handler produced by build, restarting it
// whenever reload delivers a notification, until ctx is canceled.
//
// A nil reload channel disables restarts (debug mode). Bind failures and
// other serve errors are returned to the caller; ctx cancellation returns
// nil after a graceful shutdown so all sockets are released.
func Serve(ctx context.Context, addr string, build func() http.Handler, reload <-chan struct{}) error {
	for {
		srv := &http.Server{
			Addr:    addr,
			Handler: build(),
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			// ListenAndServe never returns nil; ErrServerClosed cannot
			// happen here because Shutdown is only called below.
			return err

		case <-reload:
			logger.Infof("Reloading server on %s", addr)
			if err := shutdown(srv); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			continue

		case <-ctx.Done():
			if err := shutdown(srv); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	}
}

func shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		srv.Close()
		return err
	}
	return nil
}

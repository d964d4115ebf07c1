package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// ListenAndServe serves the API on addr (or ln when non-nil) until ctx is
// cancelled, then shuts down gracefully. Idle sessions are swept while it runs.
func ListenAndServe(ctx context.Context, addr string, ln net.Listener, a *API) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.Sessions.Run(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		var err error
		if ln != nil {
			err = srv.Serve(ln)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()
	if ln != nil {
		addr = ln.Addr().String()
	}
	a.Log.WithField("addr", addr).Info("http api listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package debugserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"go.mytest.dev/mylog/fatalerror"
)

const shutdownTimeout = 5 * time.Second

// NewRouter returns a new instance of chi router serving call site introspection.
// logs and gatherer are optional.
func NewRouter(sites SiteLister, logs LogSource, gatherer prometheus.Gatherer) http.Handler {
	router := chi.NewRouter()
	router.Use(AccessLogMiddleware())

	router.Get("/ping", NewPingHandler().ServeHTTP)
	router.Get("/sites", NewSitesHandler(sites).ServeHTTP)

	if logs != nil {
		router.Get("/logs", NewLogsHandler(logs).ServeHTTP)
	}

	if gatherer != nil {
		router.Get("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	}

	return router
}

// AccessLogMiddleware writes api access log.
func AccessLogMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			log.Debug("Debug API request - ", r.Method, " ", r.URL)
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// Serve listens on addr and serves handler until ctx is done.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fatalerror.Wrap(fatalerror.DebugServerFailed, fmt.Errorf("listen on %s: %w", addr, err))
	}
	return ServeListener(ctx, ln, handler)
}

// ServeListener serves handler on ln until ctx is done, then shuts down gracefully.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Debug server listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fatalerror.Wrap(fatalerror.DebugServerFailed, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fatalerror.Wrap(fatalerror.DebugServerFailed, fmt.Errorf("shutdown: %w", err))
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fatalerror.Wrap(fatalerror.DebugServerFailed, err)
	}
	log.Info("Debug server stopped")
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// healthServer answers the hosting platform's liveness probe. Every
// path returns 200 with a short plain-text body; the process being up
// is the only signal.
type healthServer struct {
	server *http.Server
	logger *slog.Logger
}

func newHealthServer(port int, logger *slog.Logger) *healthServer {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "Bot is running!")
	})
	return &healthServer{
		server: &http.Server{
			Addr:              net.JoinHostPort("", fmt.Sprintf("%d", port)),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// run serves until ctx is cancelled, then shuts down gracefully. It
// returns nil on a clean shutdown.
func (h *healthServer) run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.server.ListenAndServe()
	}()
	h.logger.Info("liveness endpoint up", "addr", h.server.Addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("liveness endpoint: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("liveness endpoint shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

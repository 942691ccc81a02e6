// Copyright 2020 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package server serves the pre-rendered dashboard page over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second

	// RequestIDHeader is set on every response.
	RequestIDHeader = "X-Request-Id"
)

// Config defines startup inputs for the server.
type Config struct {
	HTTPAddr string
	Logger   *zap.Logger // nil to disable request logging
}

// Server serves a single immutable page at "/".
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler returns a handler that writes page in response to GET and HEAD
// requests for "/". Other paths get 404 and other methods get 405.
func NewHandler(page []byte, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(page)))
		if req.Method == http.MethodHead {
			return
		}
		w.Write(page)
	}).Methods(http.MethodGet, http.MethodHead)

	if logger == nil {
		logger = zap.NewNop()
	}
	// Router middleware only runs for matched routes, so wrap the whole router
	// to also log 404s and 405s.
	return requestLogger(logger)(r)
}

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
	n      int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.n += n
	return n, err
}

// requestLogger tags each request with a random ID and logs it after it's handled.
func requestLogger(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			id := uuid.NewString()
			w.Header().Set(RequestIDHeader, id)

			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, req)
			if sw.status == 0 {
				sw.status = http.StatusOK
			}
			logger.Info("Handled request",
				zap.String("request_id", id),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", sw.status),
				zap.Int("bytes", sw.n),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// New validates cfg and constructs a server for page.
func New(cfg Config, page []byte) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           NewHandler(page, cfg.Logger),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Addr returns the address that the server listens on.
func (s *Server) Addr() string { return s.httpAddr }

// ListenAndServe serves HTTP traffic until ctx is cancelled or the server is closed.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}

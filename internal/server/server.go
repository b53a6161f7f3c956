// Package server provides the HTTP API for validating user details, editing
// the draft and generating the profile PDF.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/profile-pdf/internal/rendering"
	"github.com/jonathan/profile-pdf/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	session    *session.Session
	renderer   rendering.PDFRenderer
	logger     *zap.Logger
	now        func() time.Time
	onShutdown func()

	// renders deduplicates identical concurrent POST /pdf requests.
	renders singleflight.Group
}

// Config holds server configuration
type Config struct {
	Port     int
	Session  *session.Session
	Renderer rendering.PDFRenderer
	Logger   *zap.Logger
	// Now stamps generated documents; nil means time.Now.
	Now func() time.Time
	// OnShutdown runs after the HTTP server has stopped, e.g. to close
	// storage connections.
	OnShutdown func()
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Session == nil {
		return nil, errors.New("server requires a session")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("server requires a PDF renderer")
	}

	s := &Server{
		session:    cfg.Session,
		renderer:   cfg.Renderer,
		logger:     cfg.Logger,
		now:        cfg.Now,
		onShutdown: cfg.OnShutdown,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF rendering can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Stateless validation and formatting
	mux.HandleFunc("GET /countries", s.handleCountries)
	mux.HandleFunc("POST /phone/validate", s.handlePhoneValidate)
	mux.HandleFunc("POST /phone/format", s.handlePhoneFormat)
	mux.HandleFunc("POST /validate", s.handleValidate)
	mux.HandleFunc("POST /validate/field", s.handleValidateField)
	mux.HandleFunc("POST /pdf", s.handlePDF)

	// Draft session
	mux.HandleFunc("GET /draft", s.handleGetDraft)
	mux.HandleFunc("PUT /draft/fields/{field}", s.handleSetField)
	mux.HandleFunc("PUT /draft/country", s.handleChangeCountry)
	mux.HandleFunc("DELETE /draft", s.handleClearDraft)
	mux.HandleFunc("POST /draft/preview", s.handlePreview)
	mux.HandleFunc("GET /draft/preview.html", s.handlePreviewHTML)
	mux.HandleFunc("POST /draft/edit", s.handleEdit)
	mux.HandleFunc("POST /draft/pdf", s.handleDraftPDF)

	return s.withRequestID(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.onShutdown != nil {
		s.onShutdown()
	}
	s.logger.Info("server stopped")
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

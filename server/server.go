// Package server exposes the form assistant over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/tbxark/formassist/agent"
	"github.com/tbxark/formassist/forms"
)

const shutdownTimeout = 10 * time.Second

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	svc      *agent.Service
	registry *forms.Registry
	router   chi.Router
}

func New(svc *agent.Service, registry *forms.Registry) *Server {
	s := &Server{
		svc:      svc,
		registry: registry,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Post("/chat", s.handleChat)
	r.Post("/get_form_data", s.handleGetFormData)
	r.Post("/reset_conversation", s.handleResetConversation)
	r.Post("/transcribe", s.handleTranscribe)
	r.Post("/sessions", s.handleNewSession)

	r.Route("/forms", func(r chi.Router) {
		r.Get("/", s.handleListForms)
		r.Get("/{formID}", s.handleGetForm)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // model calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("Server stopped successfully")
	return nil
}

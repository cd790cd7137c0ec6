// Copyright (c) 2026 Inkpress. All rights reserved.
// Author: an.lethanh.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lethanhan/inkpress/internal/admin"
	"github.com/lethanhan/inkpress/internal/blog/category"
	"github.com/lethanhan/inkpress/internal/blog/comment"
	"github.com/lethanhan/inkpress/internal/blog/post"
	"github.com/lethanhan/inkpress/internal/platform/config"
	"github.com/lethanhan/inkpress/internal/platform/constants"
	"github.com/lethanhan/inkpress/internal/platform/middleware"
	"github.com/lethanhan/inkpress/internal/platform/sec"
	"github.com/lethanhan/inkpress/internal/users/account"
	"github.com/lethanhan/inkpress/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, and session routes.
	Auth *auth.Handler

	// Account handles profile self-service under /users/me.
	Account *account.Handler

	// Post handles the article catalogue and likes.
	Post *post.Handler

	// Comment handles discussion threads, both standalone and nested
	// under /posts.
	Comment *comment.Handler

	// Category handles the taxonomy routes.
	Category *category.Handler

	// Admin handles the role-gated administrative subtree.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			h.Auth.RegisterRoutes(r)
		})

		api.Route("/users/me", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			h.Account.RegisterRoutes(r)
		})

		// Comments nest under posts for creation and listing; the
		// standalone /comments subtree covers direct mutation.
		api.Route("/posts", func(r chi.Router) {
			h.Post.RegisterRoutes(r)
			h.Comment.RegisterPostRoutes(r)
		})

		api.Route("/comments", func(r chi.Router) {
			h.Comment.RegisterRoutes(r)
		})

		api.Route("/categories", func(r chi.Router) {
			h.Category.RegisterRoutes(r)
		})

		api.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(sec.RoleAdmin))
			h.Admin.RegisterRoutes(r)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

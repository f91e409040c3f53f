package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dstokesj/loginbench/internal/config"
	webmiddleware "github.com/dstokesj/loginbench/internal/web/middleware"
)

// NewRouter wires the fixture routes and middleware chain
func NewRouter(cfg *config.Config, h *Handlers, logger *zap.Logger) (chi.Router, error) {
	staticFS, err := StaticFS()
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(webmiddleware.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(webmiddleware.SecurityHeaders(cfg))
	r.Use(webmiddleware.MaxBytes(cfg.Server.Security.MaxRequestBytes))
	if cfg.Server.Security.CSRFEnabled {
		r.Use(webmiddleware.CSRFProtection([]byte(cfg.Server.Security.CSRFSecret), cfg.IsHTTPS()))
	}

	// The login page and its two submission boundaries
	r.Get("/", h.Login)
	r.Post("/", h.Submit)
	r.Post("/api/login", h.APILogin)

	r.Get("/healthz", h.Healthz)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// 404 handler (must be last)
	r.NotFound(h.NotFound)

	return r, nil
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/certwatch/certwatch/internal/api/handler"
	mw "github.com/certwatch/certwatch/internal/api/middleware"
	"github.com/certwatch/certwatch/internal/api/response"
	"github.com/certwatch/certwatch/internal/config"
	"github.com/certwatch/certwatch/internal/core"
	"github.com/certwatch/certwatch/internal/db"
)

type Server struct {
	router       chi.Router
	logger       zerolog.Logger
	services     *core.Services
	pool         *pgxpool.Pool
	bootstrapper *db.Bootstrapper
	cfg          *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, bootstrapper *db.Bootstrapper, cfg *config.Config) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		logger:       logger,
		services:     core.NewServices(pool),
		pool:         pool,
		bootstrapper: bootstrapper,
		cfg:          cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusNotFound, "resource not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusMethodNotAllowed, "method not supported")
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.Bootstrap(s.bootstrapper))

		// Domains
		domain := handler.NewDomain(s.services.Domain)
		r.Get("/domains", domain.List)
		r.Post("/domains", domain.Create)
		r.Put("/domains", handler.MissingID)
		r.Delete("/domains", handler.MissingID)
		r.Get("/domains/{id}", domain.Get)
		r.Put("/domains/{id}", domain.Update)
		r.Delete("/domains/{id}", domain.Delete)

		// Certificates
		cert := handler.NewCertificate(s.services.Certificate)
		r.Get("/certificates", cert.List)
		r.Post("/certificates", cert.Create)
		r.Put("/certificates", handler.MissingID)
		r.Delete("/certificates", handler.MissingID)
		r.Get("/certificates/{id}", cert.Get)
		r.Put("/certificates/{id}", cert.Update)
		r.Delete("/certificates/{id}", cert.Delete)

		// Settings, including migrate/backup/restore
		setting := handler.NewSetting(s.services.Setting)
		r.Get("/settings", setting.GetAll)
		r.Post("/settings", setting.SetAll)
		r.Get("/settings/migrate", setting.Migrate)
		r.Get("/settings/backup", setting.Backup)
		r.Post("/settings/restore", setting.Restore)

		// Monitor
		monitor := handler.NewMonitor(s.services.Monitor, s.cfg.MonitorWindowDays)
		r.Get("/monitor/overview", monitor.Overview)
		r.Get("/monitor/config", monitor.GetConfig)
		r.Post("/monitor/config", monitor.SetConfig)

		// Poller-compatible expiry summary
		check := handler.NewCheck(s.services.Monitor, s.cfg.MonitorWindowDays)
		r.Get("/check", check.Run)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

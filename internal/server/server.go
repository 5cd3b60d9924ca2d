package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/BlueprintCost_Go/internal/costing"
	"github.com/osse101/BlueprintCost_Go/internal/handler"
	"github.com/osse101/BlueprintCost_Go/internal/metrics"
)

// Server is the HTTP front of the costing service
type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// Options carries the server's dependencies
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Service        costing.Service
	// DB is pinged by /readyz when override storage is a database
	DB handler.Pinger
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	r := chi.NewRouter()

	// Outermost first
	proxies := NewProxySet(opts.TrustedProxies)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(RateLimitMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.MetricsMiddleware)
	r.Use(loggingMiddleware)

	mountPublic(r, opts)
	r.Route("/api/v1", func(r chi.Router) { mountAPI(r, opts.Service) })

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// mountPublic registers the health checks, build info, metrics and docs. These paths
// are listed in PublicPaths.
func mountPublic(r chi.Router, opts Options) {
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.Service, opts.DB))
	r.Get("/version", handler.HandleVersion(opts.Service))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

func mountAPI(r chi.Router, svc costing.Service) {
	r.Get("/dataset", handler.HandleGetDataset(svc))

	r.Route("/costs", func(r chi.Router) {
		r.Get("/", handler.HandleGetCosts(svc))
		r.Get("/{blueprintID}", handler.HandleGetBlueprintCost(svc))
	})

	r.Get("/types/{typeID}/consumers", handler.HandleGetConsumers(svc))

	r.Route("/efficiency", func(r chi.Router) {
		r.Get("/", handler.HandleListEfficiency(svc))
		r.Get("/{blueprintID}", handler.HandleGetEfficiency(svc))
		r.Put("/{blueprintID}", handler.HandlePutEfficiency(svc))
		r.Delete("/{blueprintID}", handler.HandleDeleteEfficiency(svc))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/reload", handler.HandleReload(svc))
		r.Get("/cache/stats", handler.HandleGetCacheStats(svc))
	})
}

// Handler exposes the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/platform/kv"
	"staffdesk/internal/platform/metrics"
	"staffdesk/internal/transport/http/api"
	authhandler "staffdesk/internal/transport/http/handlers/auth"
	dashboardhandler "staffdesk/internal/transport/http/handlers/dashboard"
	staffhandler "staffdesk/internal/transport/http/handlers/staff"
	"staffdesk/internal/transport/http/middleware"
)

func (a *App) routes() http.Handler {
	cfg := a.Config

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(middleware.SecurityHeadersConfig{
		HSTS:         cfg.Environment == "production",
		ImageOrigins: cfg.ImageOrigins,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		pinger, ok := a.Sessions.(kv.Pinger)
		if ok {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				http.Error(w, "session store not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Handle("/metrics", metrics.Handler(a.Registry))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusNotFound, api.CodeNotFound, "route not found", middleware.GetRequestID(r.Context()))
		})

		authHandler := authhandler.NewHandler(a.Gate, cfg.JWTSecret, cfg.SessionTTL)
		var limitOpts []middleware.RateLimitOption
		if cfg.TrustProxyHeaders {
			limitOpts = append(limitOpts, middleware.TrustForwardedFor())
		}
		authHandler.RegisterRoutes(r, middleware.RateLimit(cfg.AuthRateLimitPerMinute, time.Minute, limitOpts...))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(a.Gate))

			staffhandler.NewHandler(a.Store).RegisterRoutes(r)
			dashboardhandler.NewHandler(a.Store).RegisterRoutes(r)
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router
}

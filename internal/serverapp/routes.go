package serverapp

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"landwand-api/internal/middleware"
)

// Version is stamped by the build; surfaced on the index endpoint.
var Version = "1.0.0"

func (a *App) buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/users", a.handleListUsers)
	mux.HandleFunc("GET /api/users/{id}", a.handleGetUser)
	mux.HandleFunc("POST /api/users", a.handleCreateUser)
	mux.HandleFunc("PUT /api/users/{id}", a.handleUpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", a.handleDeleteUser)

	mux.HandleFunc("GET /api/data", a.handleFilterProperties)
	mux.HandleFunc("GET /api/data/aggregate", a.handleAggregateProperties)
	mux.HandleFunc("GET /api/data/{id}", a.handleGetProperty)
	mux.HandleFunc("POST /api/data", a.handleCreateProperty)
	mux.HandleFunc("PUT /api/data/{id}", a.handleUpdateProperty)
	mux.HandleFunc("DELETE /api/data/{id}", a.handleDeleteProperty)

	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("GET /health", a.handleHealth)
	if a.cfg.Observability.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.MetricsMiddleware(a.httpMetrics)(handler)
	handler = middleware.CORSMiddleware(middleware.CORSConfig{
		Enabled:        a.cfg.Server.CORSEnabled,
		AllowedOrigins: a.cfg.Server.CORSAllowedOrigins,
		AllowedMethods: a.cfg.Server.CORSAllowedMethods,
		AllowedHeaders: a.cfg.Server.CORSAllowedHeaders,
	})(handler)
	handler = middleware.LoggingMiddleware(a.logger)(handler)
	return handler
}

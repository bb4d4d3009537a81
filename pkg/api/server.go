// Package api exposes the record codec over HTTP.
//
// Routes:
//
//	GET  /api/v1/health
//	POST /api/v1/records/encode[?format=hex|base64|raw]
//	POST /api/v1/records/size
//	GET  /metrics
//	GET  /swagger/{index.html,swagger.json,swagger.yaml}
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the API routes. Metrics registered on reg are served on /metrics.
func NewRouter(server *Server, logger *zap.Logger, reg *prometheus.Registry) http.Handler {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Record-Body-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(server.config.APIKey))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/records/encode", metrics.InstrumentHandler("POST", "/api/v1/records/encode", server.handleEncode))
		r.Post("/records/size", metrics.InstrumentHandler("POST", "/api/v1/records/size", server.handleSize))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", swaggerHandler(logger))

	return r
}

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	<title>brokercore record API</title>
	<link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	<div id="swagger-ui"></div>
	<script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	<script>
	  window.onload = function() {
	    SwaggerUIBundle({
	      url: '/swagger/swagger.json',
	      dom_id: '#swagger-ui',
	      presets: [
	        SwaggerUIBundle.presets.apis,
	        SwaggerUIBundle.presets.standalone
	      ]
	    });
	  };
	</script>
</body>
</html>`

// swaggerHandler serves the Swagger UI and the registered OpenAPI document as
// JSON or YAML
func swaggerHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/swagger/", "/swagger/index.html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(swaggerUI))

		case "/swagger/swagger.json":
			doc, err := swag.ReadDoc(docsInstanceName)
			if err != nil {
				logger.Error("failed to read swagger doc", zap.Error(err))
				sendError(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(doc))

		case "/swagger/swagger.yaml":
			doc, err := swaggerYAML()
			if err != nil {
				logger.Error("failed to convert swagger doc", zap.Error(err))
				sendError(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(doc)

		default:
			http.NotFound(w, r)
		}
	}
}

// swaggerYAML re-renders the JSON document as YAML. JSON is valid YAML, so a
// YAML decode followed by an encode is the whole conversion.
func swaggerYAML() ([]byte, error) {
	doc, err := swag.ReadDoc(docsInstanceName)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
		return nil, fmt.Errorf("failed to parse swagger doc: %w", err)
	}
	clearStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to render swagger doc: %w", err)
	}
	return out, nil
}

// clearStyle drops the flow style the JSON input leaves on every node so the
// output is block YAML
func clearStyle(node *yaml.Node) {
	node.Style &^= yaml.FlowStyle
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// StartServer runs the HTTP server until ctx is cancelled, then shuts it down
func StartServer(ctx context.Context, config ServerConfig, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := NewServer(config, NewMetrics(reg))
	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server, logger, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting record API server",
			zap.String("addr", addr),
			zap.String("metrics", fmt.Sprintf("http://%s/metrics", addr)))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down record API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Package api assembles the HTTP surface of the service.
package api

import (
	"net/http"

	"github.com/Ayash-Bera/dorkgen/internal/api/handlers"
	"github.com/Ayash-Bera/dorkgen/internal/health"
	"github.com/Ayash-Bera/dorkgen/internal/metrics"
	"github.com/Ayash-Bera/dorkgen/internal/middleware"
	"github.com/Ayash-Bera/dorkgen/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const ServiceName = "dorkgen"

type Deps struct {
	SearchService *services.SearchService
	HealthChecker *health.HealthChecker
	RateLimiter   *middleware.RateLimiter
	CORSOrigins   []string
	Logger        *logrus.Logger
}

// NewRouter registers routes and middleware on a fresh gin engine.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.SecurityHeaders(),
		metrics.Middleware(),
	)

	searchHandler := handlers.NewSearchHandler(deps.SearchService, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecker, ServiceName)

	r.GET("/health", healthHandler.HandleHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	limited := r.Group("/")
	if deps.RateLimiter != nil {
		limited.Use(deps.RateLimiter.RateLimit())
	}
	limited.POST("/search", searchHandler.HandleSearch)

	v1 := limited.Group("/api/v1")
	v1.GET("/dork", searchHandler.HandleDork)
	v1.GET("/analyze", searchHandler.HandleAnalyze)
	v1.GET("/suggestions", searchHandler.HandleSearchSuggestions)
	v1.GET("/taxonomy", searchHandler.HandleTaxonomy)

	return r
}

// NewHandler wraps the router with CORS.
func NewHandler(deps Deps) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(NewRouter(deps))
}

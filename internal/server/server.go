// Package server boots the HTTP service from a loaded config.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Ayash-Bera/dorkgen/internal/api"
	"github.com/Ayash-Bera/dorkgen/internal/cache"
	"github.com/Ayash-Bera/dorkgen/internal/config"
	"github.com/Ayash-Bera/dorkgen/internal/dorking"
	"github.com/Ayash-Bera/dorkgen/internal/health"
	"github.com/Ayash-Bera/dorkgen/internal/middleware"
	"github.com/Ayash-Bera/dorkgen/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Run serves until ctx is cancelled, then shuts down gracefully. Every
// resource it opens is released before it returns.
func Run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gin.SetMode(cfg.Server.Mode)

	engine := dorking.NewEngine()

	// Interface values stay nil unless Redis is reachable
	var resultCache services.ResultCache
	var pinger health.Pinger
	if cfg.CacheEnabled() {
		client, err := cache.Connect(ctx, cfg.Redis.URL, logger)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			c := cache.New(client, cfg.Cache.TTL, logger)
			defer c.Close()
			resultCache, pinger = c, c
		}
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	go limiter.Cleanup(time.Minute, ctx.Done())

	handler := api.NewHandler(api.Deps{
		SearchService: services.NewSearchService(engine, resultCache, cfg.Query.MaxLength, logger),
		HealthChecker: health.NewHealthChecker(engine, pinger, logger),
		RateLimiter:   limiter,
		CORSOrigins:   cfg.CORS.Origins,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":  srv.Addr,
			"cache": resultCache != nil,
		}).Info("Starting dorkgen server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

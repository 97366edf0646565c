package health

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayash-Bera/dorkgen/internal/dorking"
	"github.com/Ayash-Bera/dorkgen/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// Pinger is satisfied by the Redis cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports on the dork engine and the optional cache.
type HealthChecker struct {
	engine *dorking.Engine
	cache  Pinger
	logger *logrus.Logger
}

func NewHealthChecker(engine *dorking.Engine, cache Pinger, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{
		engine: engine,
		cache:  cache,
		logger: logger,
	}
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

const (
	probeQuery = "confidential"
	probeDork  = "confidential filetype:pdf OR filetype:doc"
)

// CheckEngine runs a known query through the builder.
func (h *HealthChecker) CheckEngine() ServiceHealth {
	start := time.Now()
	got := h.engine.Build(probeQuery, "")

	status := StatusHealthy
	errorMsg := ""
	if got != probeDork {
		status = StatusUnhealthy
		errorMsg = fmt.Sprintf("unexpected probe result %q", got)
		h.logger.WithField("result", got).Error("Engine health check failed")
	}

	return ServiceHealth{
		Name:         "engine",
		Status:       status,
		ResponseTime: int(time.Since(start).Milliseconds()),
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckRedis checks Redis cache health
func (h *HealthChecker) CheckRedis(ctx context.Context) ServiceHealth {
	if h.cache == nil {
		return ServiceHealth{
			Name:        "redis",
			Status:      StatusDisabled,
			LastChecked: time.Now().Format(time.RFC3339),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.cache.Ping(ctx)
	responseTime := int(time.Since(start).Milliseconds())

	status := StatusHealthy
	errorMsg := ""
	if err != nil {
		status = StatusUnhealthy
		errorMsg = err.Error()
		h.logger.WithError(err).Error("Redis health check failed")
	}

	return ServiceHealth{
		Name:         "redis",
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll performs health checks on all services. A failing cache only
// degrades the service since requests still succeed without it.
func (h *HealthChecker) CheckAll(ctx context.Context) OverallHealth {
	engine := h.CheckEngine()
	redis := h.CheckRedis(ctx)

	overallStatus := StatusHealthy
	if redis.Status == StatusUnhealthy {
		overallStatus = StatusDegraded
	}
	if engine.Status == StatusUnhealthy {
		overallStatus = StatusUnhealthy
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: []ServiceHealth{engine, redis},
		Uptime:   h.getUptime(),
	}
}

// Summary flattens a health report into the API response shape.
func (o OverallHealth) Summary(service string) models.HealthResponse {
	services := make(map[string]string, len(o.Services))
	for _, s := range o.Services {
		services[s.Name] = s.Status
	}
	return models.HealthResponse{
		Status:    o.Status,
		Service:   service,
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  services,
	}
}

var startTime = time.Now()

func (h *HealthChecker) getUptime() string {
	uptime := time.Since(startTime)
	return uptime.String()
}

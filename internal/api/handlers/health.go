package handlers

import (
	"net/http"

	"github.com/Ayash-Bera/dorkgen/internal/health"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	checker *health.HealthChecker
	service string
}

func NewHealthHandler(checker *health.HealthChecker, service string) *HealthHandler {
	return &HealthHandler{checker: checker, service: service}
}

func (h *HealthHandler) HandleHealth(c *gin.Context) {
	report := h.checker.CheckAll(c.Request.Context())

	code := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report.Summary(h.service))
}

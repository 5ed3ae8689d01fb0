package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-report-gateway/internal/service"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
)

type poolProbe interface {
	Ping(ctx context.Context) error
	Stats() database.PoolStats
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	pool    poolProbe
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, pool poolProbe) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, pool: pool}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether a pooled connection can reach the database.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.pool == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	if err := h.pool.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "pool": h.pool.Stats()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "pool": h.pool.Stats()})
}

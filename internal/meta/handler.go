package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/config"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler handles meta endpoints (health check, metrics)
type Handler struct {
	cfg     *config.Config
	pool    *database.Pool
	metrics *metrics.Metrics
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, pool *database.Pool, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:     cfg,
		pool:    pool,
		metrics: m,
	}
}

// Health checks service and database health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	health := h.pool.Health(ctx)

	service := gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
	}
	database := gin.H{
		"status":     "up",
		"driver":     h.pool.Driver(),
		"latency_ms": health.Latency.Milliseconds(),
		"pool":       health.Stats,
	}

	if !health.Reachable {
		slog.Error("Health check 실패", "error", health.Error)
		database["status"] = "down"
		database["error"] = health.Error

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": service,
			"checks":  gin.H{"database": database},
		})
		return
	}

	// All checks passed
	service["port"] = h.cfg.App.Port
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": service,
		"checks":  gin.H{"database": database},
	})
}

// Metrics returns the Prometheus scrape handler, or nil when metrics are disabled.
func (h *Handler) Metrics() gin.HandlerFunc {
	if h.metrics == nil {
		return nil
	}
	return gin.WrapH(promhttp.HandlerFor(h.metrics.Registry(), promhttp.HandlerOpts{}))
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/config"
	"github.com/uniadmit/proctor-gateway/internal/service"
)

const probeTimeout = 2 * time.Second

// SystemHandler serves liveness and readiness probes plus a small operational
// status view.
type SystemHandler struct {
	pool      *pgxpool.Pool
	rdb       *redis.Client
	registry  *service.Registry
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(pool *pgxpool.Pool, rdb *redis.Client, registry *service.Registry, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		pool:      pool,
		rdb:       rdb,
		registry:  registry,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptime":        time.Since(h.startTime).Round(time.Second).String(),
		"live_sessions": h.registry.Count(),
	})
}

// Ready godoc
// GET /ready
// Fails when either backing store is unreachable.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	checks := gin.H{"postgres": "ok", "redis": "ok"}
	healthy := true

	if err := h.pool.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"checks": checks})
}

// QueueStatus godoc
// GET /api/v1/admin/system/queues
// Reports persistence queue depths so operators can spot a stuck worker.
func (h *SystemHandler) QueueStatus(c *gin.Context) {
	ctx := c.Request.Context()

	pipe := h.rdb.Pipeline()
	eventsCmd := pipe.LLen(ctx, config.WorkerKey.PersistEventsQueue)
	outcomesCmd := pipe.LLen(ctx, config.WorkerKey.PersistOutcomesQueue)
	if _, err := pipe.Exec(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Queue length fetch failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "redis unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"queue_events":   eventsCmd.Val(),
		"queue_outcomes": outcomesCmd.Val(),
		"live_sessions":  h.registry.Count(),
	})
}

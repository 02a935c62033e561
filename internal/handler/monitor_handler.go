package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/config"
	"github.com/uniadmit/proctor-gateway/internal/middleware"
	"github.com/uniadmit/proctor-gateway/internal/response"
	"github.com/uniadmit/proctor-gateway/internal/service"
)

const keepAliveInterval = 30 * time.Second

// MonitorHandler streams a session's live proctoring events to operators
// over SSE, fed by the Redis Pub/Sub channel the event recorder publishes to.
type MonitorHandler struct {
	rdb      *redis.Client
	registry *service.Registry
	log      zerolog.Logger
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(rdb *redis.Client, registry *service.Registry, log zerolog.Logger) *MonitorHandler {
	return &MonitorHandler{
		rdb:      rdb,
		registry: registry,
		log:      log.With().Str("component", "monitor_handler").Logger(),
	}
}

// SessionEventsSSE godoc
// GET /api/v1/admin/sessions/:session_id/events
func (h *MonitorHandler) SessionEventsSSE(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID := c.Param("session_id")
	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Initial snapshot if the session is live right now; events alone don't
	// tell a newly attached operator where the session stands.
	if ctrl := h.registry.Get(sessionID); ctrl != nil {
		snapshot, _ := json.Marshal(map[string]interface{}{
			"type": "snapshot",
			"data": ctrl.State(),
		})
		writeSSE(c, snapshot)
	}

	pubsub := h.rdb.Subscribe(reqCtx, config.CacheKey.SessionMonitorChannel(sessionID))
	defer pubsub.Close()
	ch := pubsub.Channel()

	keepAliveTicker := time.NewTicker(keepAliveInterval)
	defer keepAliveTicker.Stop()

	pingPayload, _ := json.Marshal(map[string]string{"type": "ping"})

	h.log.Info().Str("session_id", sessionID).Int("operator_id", claims.UserID).Msg("Operator attached to session feed")

	for {
		select {
		case <-reqCtx.Done():
			h.log.Info().Str("session_id", sessionID).Msg("Operator detached from session feed")
			return

		case msg := <-ch:
			// Forward raw JSON directly, no deserialization needed.
			writeSSE(c, []byte(msg.Payload))

		case <-keepAliveTicker.C:
			writeSSE(c, pingPayload)
		}
	}
}

func writeSSE(c *gin.Context, payload []byte) {
	c.Writer.Write([]byte("data: "))
	c.Writer.Write(payload)
	c.Writer.Write([]byte("\n\n"))
	c.Writer.Flush()
}

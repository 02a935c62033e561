package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/config"
	"github.com/uniadmit/proctor-gateway/internal/model"
)

// EventRecorder fans proctoring telemetry out two ways: onto the persistence
// queue drained by the event worker, and onto the session's Pub/Sub channel
// for live invigilator feeds. Both paths are best effort; a lost event never
// affects the session. Implements proctor.Recorder.
type EventRecorder struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewEventRecorder creates a new EventRecorder.
func NewEventRecorder(rdb *redis.Client, log zerolog.Logger) *EventRecorder {
	return &EventRecorder{
		rdb: rdb,
		log: log.With().Str("component", "event_recorder").Logger(),
	}
}

// Record queues the event for persistence and publishes it to watchers.
func (r *EventRecorder) Record(ev model.ProctorEvent) {
	ctx := context.Background()

	payload, err := json.Marshal(ev)
	if err != nil {
		r.log.Error().Err(err).Msg("Event marshal failed")
		return
	}

	if err := r.rdb.RPush(ctx, config.WorkerKey.PersistEventsQueue, payload).Err(); err != nil {
		r.log.Warn().Err(err).Str("session_id", ev.SessionID).Msg("Event queue push failed")
	}
	if err := r.rdb.Publish(ctx, config.CacheKey.SessionMonitorChannel(ev.SessionID), payload).Err(); err != nil {
		r.log.Debug().Err(err).Msg("Event publish failed")
	}
}

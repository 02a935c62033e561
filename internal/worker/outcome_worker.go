package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/config"
)

// OutcomeWorker consumes persist_outcomes_queue and UPSERTs accepted
// submission outcomes to PostgreSQL. One row per session; a late duplicate
// just refreshes it.
type OutcomeWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewOutcomeWorker creates a new OutcomeWorker.
func NewOutcomeWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *OutcomeWorker {
	return &OutcomeWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "outcome_worker").Logger(),
	}
}

type outcomePayload struct {
	SessionID        string `json:"session_id"`
	AnswerCount      int    `json:"answer_count"`
	IsAutoSubmitted  bool   `json:"is_auto_submitted"`
	AutoSubmitReason string `json:"auto_submit_reason"`
	Message          string `json:"message"`
	SubmittedAt      int64  `json:"submitted_at"`
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *OutcomeWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *OutcomeWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.PersistOutcomesQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var payload outcomePayload
	if err := json.Unmarshal([]byte(result[1]), &payload); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.persistOutcome(ctx, &payload); err != nil {
		w.log.Error().Err(err).
			Str("session_id", payload.SessionID).
			Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.PersistOutcomesQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *OutcomeWorker) persistOutcome(ctx context.Context, p *outcomePayload) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO submission_outcomes (session_id, answer_count, is_auto_submitted, auto_submit_reason, message, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (session_id) DO UPDATE
		 SET answer_count = EXCLUDED.answer_count,
		     is_auto_submitted = EXCLUDED.is_auto_submitted,
		     auto_submit_reason = EXCLUDED.auto_submit_reason,
		     message = EXCLUDED.message,
		     submitted_at = EXCLUDED.submitted_at`,
		p.SessionID, p.AnswerCount, p.IsAutoSubmitted, p.AutoSubmitReason, p.Message, time.Unix(p.SubmittedAt, 0),
	)
	return err
}

// drain processes all remaining items in the queue before shutdown.
func (w *OutcomeWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.PersistOutcomesQueue).Result()
		if err != nil {
			break
		}

		var payload outcomePayload
		if err := json.Unmarshal([]byte(result), &payload); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.persistOutcome(ctx, &payload); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.WorkerKey.PersistOutcomesQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

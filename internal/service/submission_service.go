package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/config"
	"github.com/uniadmit/proctor-gateway/internal/model"
)

// SubmissionService delivers final answer sets to the admissions backend and
// queues a local outcome record for the audit trail. Grading happens
// upstream; the gateway only relays the verdict. Implements
// proctor.SubmissionService.
type SubmissionService struct {
	cfg  *config.Config
	rdb  *redis.Client
	http *http.Client
	log  zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		cfg:  cfg,
		rdb:  rdb,
		http: &http.Client{Timeout: cfg.UpstreamTimeout},
		log:  log.With().Str("component", "submission_service").Logger(),
	}
}

// SubmitAnswers posts the submission upstream. Transport and server errors
// come back as errors; a 2xx with success=false is a rejected submission the
// caller may surface verbatim.
func (s *SubmissionService) SubmitAnswers(ctx context.Context, req model.SubmissionRequest) (*model.SubmissionResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	url := fmt.Sprintf("%s/internal/v1/test-sessions/%s/submission", s.cfg.UpstreamBaseURL, req.SessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build submission request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.UpstreamToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upstream submission status %d: %s", resp.StatusCode, body)
	}

	var result model.SubmissionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode submission result: %w", err)
	}

	if result.Success {
		s.queueOutcome(req, &result)
	}
	return &result, nil
}

// queueOutcome pushes the accepted submission onto the persistence queue for
// the outcome worker. Best effort; the upstream already holds the answers.
func (s *SubmissionService) queueOutcome(req model.SubmissionRequest, res *model.SubmissionResult) {
	payload, _ := json.Marshal(map[string]interface{}{
		"session_id":         req.SessionID,
		"answer_count":       len(req.Answers),
		"is_auto_submitted":  req.IsAutoSubmitted,
		"auto_submit_reason": req.AutoSubmitReason,
		"message":            res.Message,
		"submitted_at":       time.Now().Unix(),
	})
	if err := s.rdb.RPush(context.Background(), config.WorkerKey.PersistOutcomesQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", req.SessionID).Msg("Outcome queue push failed")
	}
}

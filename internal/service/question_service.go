package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/config"
	"github.com/uniadmit/proctor-gateway/internal/proctor"
)

// ErrPaperNotFound means the upstream has no paper for the session, usually
// because the session ID is stale or the test window has closed.
var ErrPaperNotFound = errors.New("no question paper for this session")

// QuestionService fetches question papers from the admissions backend with a
// Redis read-through cache. Papers never change mid-window, so a cache hit is
// always safe to serve. Implements proctor.QuestionService.
type QuestionService struct {
	cfg  *config.Config
	rdb  *redis.Client
	http *http.Client
	log  zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		cfg:  cfg,
		rdb:  rdb,
		http: &http.Client{Timeout: cfg.UpstreamTimeout},
		log:  log.With().Str("component", "question_service").Logger(),
	}
}

// LoadQuestions returns the paper for a session, cache first.
func (s *QuestionService) LoadQuestions(ctx context.Context, sessionID string) (*proctor.QuestionSet, error) {
	cacheKey := config.CacheKey.SessionPaperKey(sessionID)

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		var set proctor.QuestionSet
		if err := json.Unmarshal([]byte(cached), &set); err == nil {
			return &set, nil
		}
		// Corrupt cache entry: drop it and fall through to the upstream.
		s.log.Warn().Str("session_id", sessionID).Msg("Dropping corrupt cached paper")
		s.rdb.Del(ctx, cacheKey)
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Paper cache read failed, going upstream")
	}

	set, err := s.fetchUpstream(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(set); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, s.cfg.PaperCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Paper cache write failed")
		}
	}
	return set, nil
}

func (s *QuestionService) fetchUpstream(ctx context.Context, sessionID string) (*proctor.QuestionSet, error) {
	url := fmt.Sprintf("%s/internal/v1/test-sessions/%s/paper", s.cfg.UpstreamBaseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build paper request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.UpstreamToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch paper: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPaperNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upstream paper status %d: %s", resp.StatusCode, body)
	}

	var set proctor.QuestionSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode paper: %w", err)
	}
	if len(set.Questions) == 0 {
		return nil, errors.New("upstream returned an empty paper")
	}
	return &set, nil
}

package websocket

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/model"
	"github.com/uniadmit/proctor-gateway/internal/proctor"
)

// ackTimeout bounds how long the gateway waits for the browser to finish an
// acked command. Permission prompts can take a while.
const ackTimeout = 30 * time.Second

var errConnClosed = errors.New("connection closed")

type ackResult struct {
	ok        bool
	errorName string
}

// SessionClient drives one applicant's browser over a WebSocket connection.
// It implements proctor.Client: commands go out as events, and acked
// operations (media acquisition, fullscreen entry) block until the read loop
// delivers the matching ack via HandleAck.
//
// All writes serialize through writeMu; gorilla connections allow only one
// concurrent writer.
type SessionClient struct {
	conn *websocket.Conn
	log  zerolog.Logger

	writeMu sync.Mutex

	mu         sync.Mutex
	acks       map[string]chan ackResult
	media      bool
	fullscreen bool
	closed     bool
}

// NewSessionClient wraps an upgraded connection.
func NewSessionClient(conn *websocket.Conn, log zerolog.Logger) *SessionClient {
	return &SessionClient{
		conn: conn,
		log:  log.With().Str("component", "session_client").Logger(),
		acks: make(map[string]chan ackResult),
	}
}

func (s *SessionClient) write(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return WriteTyped(s.conn, v)
}

// Send writes an arbitrary event payload, serialized with every other write
// on the connection. The read loop uses it for direct responses.
func (s *SessionClient) Send(v interface{}) error {
	return s.write(v)
}

// command issues a browser-side operation and, when wait is set, blocks until
// the client acks it or the deadline passes.
func (s *SessionClient) command(ctx context.Context, op CommandOp, spec *proctor.ArmSpec, wait bool) (ackResult, error) {
	req := CommandRequest{Event: EventCommand, Op: op, Spec: spec}

	if !wait {
		if err := s.write(req); err != nil {
			return ackResult{}, err
		}
		return ackResult{ok: true}, nil
	}

	cmdID := uuid.NewString()
	req.CmdID = cmdID
	ch := make(chan ackResult, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ackResult{}, errConnClosed
	}
	s.acks[cmdID] = ch
	s.mu.Unlock()

	if err := s.write(req); err != nil {
		s.dropAck(cmdID)
		return ackResult{}, err
	}

	timer := time.NewTimer(ackTimeout)
	defer timer.Stop()
	select {
	case res, open := <-ch:
		if !open {
			return ackResult{}, errConnClosed
		}
		return res, nil
	case <-timer.C:
		s.dropAck(cmdID)
		return ackResult{}, errors.New("command timed out: " + string(op))
	case <-ctx.Done():
		s.dropAck(cmdID)
		return ackResult{}, ctx.Err()
	}
}

func (s *SessionClient) dropAck(cmdID string) {
	s.mu.Lock()
	delete(s.acks, cmdID)
	s.mu.Unlock()
}

// HandleAck delivers a command completion report from the read loop.
func (s *SessionClient) HandleAck(cmdID string, ok bool, errorName string) {
	s.mu.Lock()
	ch, found := s.acks[cmdID]
	if found {
		delete(s.acks, cmdID)
	}
	s.mu.Unlock()
	if found {
		ch <- ackResult{ok: ok, errorName: errorName}
	}
}

// Shutdown fails every pending ack so blocked commands return immediately.
// Called by the read loop when the connection drops.
func (s *SessionClient) Shutdown() {
	s.mu.Lock()
	s.closed = true
	for id, ch := range s.acks {
		delete(s.acks, id)
		close(ch)
	}
	s.mu.Unlock()
}

// ─── proctor.Client ─────────────────────────────────────────────────

func (s *SessionClient) AcquireMedia(ctx context.Context) error {
	res, err := s.command(ctx, OpAcquireMedia, nil, true)
	if err != nil {
		return &proctor.MediaError{Kind: proctor.MediaOther, Name: err.Error()}
	}
	if !res.ok {
		return proctor.ClassifyMediaError(res.errorName)
	}
	s.mu.Lock()
	s.media = true
	s.mu.Unlock()
	return nil
}

func (s *SessionClient) MediaActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.media
}

func (s *SessionClient) StopMedia() {
	s.mu.Lock()
	s.media = false
	s.mu.Unlock()
	s.command(context.Background(), OpStopMedia, nil, false)
}

// EnterFullscreen orders fullscreen entry. The browser side negotiates
// vendor-prefixed APIs (requestFullscreen, webkitRequestFullscreen,
// msRequestFullscreen) and acks with the outcome.
func (s *SessionClient) EnterFullscreen(ctx context.Context) error {
	res, err := s.command(ctx, OpEnterFullscreen, nil, true)
	if err != nil {
		return err
	}
	if !res.ok {
		return errors.New("fullscreen rejected: " + res.errorName)
	}
	s.mu.Lock()
	s.fullscreen = true
	s.mu.Unlock()
	return nil
}

func (s *SessionClient) ExitFullscreen(ctx context.Context) {
	s.mu.Lock()
	s.fullscreen = false
	s.mu.Unlock()
	s.command(ctx, OpExitFullscreen, nil, false)
}

func (s *SessionClient) FullscreenActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}

// SetFullscreen mirrors fullscreen_change signals so the flag tracks reality
// even when the applicant exits with Esc rather than a command.
func (s *SessionClient) SetFullscreen(active bool) {
	s.mu.Lock()
	s.fullscreen = active
	s.mu.Unlock()
}

func (s *SessionClient) Arm(spec proctor.ArmSpec) {
	s.command(context.Background(), OpArm, &spec, false)
}

func (s *SessionClient) Disarm() {
	s.command(context.Background(), OpDisarm, nil, false)
}

func (s *SessionClient) ShowDialog(d proctor.Dialog) {
	if err := s.write(DialogResponse{Event: EventDialog, Dialog: d}); err != nil {
		s.log.Warn().Err(err).Msg("Dialog write failed")
	}
}

func (s *SessionClient) CloseDialog() {
	s.write(DialogCloseResponse{Event: EventDialogClose})
}

func (s *SessionClient) SyncTime(remainingSeconds int) {
	s.write(TickResponse{Event: EventTick, Remaining: remainingSeconds})
}

func (s *SessionClient) Submitted(res model.SubmissionResult) {
	if err := s.write(SubmittedResponse{Event: EventSubmitted, Result: res}); err != nil {
		s.log.Warn().Err(err).Msg("Result write failed")
	}
}

func (s *SessionClient) Notify(level, message string) {
	s.write(NoticeResponse{Event: EventNotice, Level: level, Message: message})
}

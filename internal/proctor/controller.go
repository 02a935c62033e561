package proctor

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/model"
)

// Phase is the session lifecycle stage. Transitions only move forward:
// not-started → in-progress → submitted.
type Phase string

const (
	PhaseNotStarted Phase = "not-started"
	PhaseInProgress Phase = "in-progress"
	PhaseSubmitted  Phase = "submitted"
)

// Sentinel errors surfaced to the transport layer.
var (
	ErrMediaRequired  = errors.New("camera and microphone access are required to start the test")
	ErrAlreadyStarted = errors.New("session is already in progress")
	ErrSessionOver    = errors.New("session has ended")
	ErrLoadInFlight   = errors.New("question load already in progress")
)

const (
	defaultDuration    = 120 * time.Minute
	defaultTick        = time.Second
	defaultRetryDelay  = 5 * time.Second
	autoSubmitAttempts = 3

	defaultInstructions = "No specific instructions provided. Follow general test guidelines."
)

// Config tunes one session controller.
type Config struct {
	SessionID string
	// Duration is the full exam length. Defaults to 120 minutes.
	Duration time.Duration
	// TickInterval is the timer resolution. Defaults to one second; tests
	// set it high and drive tick() directly.
	TickInterval time.Duration
	// RetryDelay separates automatic retries of a forced submission.
	RetryDelay time.Duration
	// Rand seeds the shuffle; nil uses a time-seeded source.
	Rand *rand.Rand
}

// StartedView is what the applicant receives when the session begins.
// Questions carry no correct answers.
type StartedView struct {
	Questions        []model.ClientQuestion `json:"questions"`
	Instructions     string                 `json:"instructions"`
	RemainingSeconds int                    `json:"remaining_seconds"`
}

// StateView is a consistent snapshot for reload support and the invigilator
// feed.
type StateView struct {
	SessionID        string                  `json:"session_id"`
	Phase            Phase                   `json:"phase"`
	RemainingSeconds int                     `json:"remaining_seconds"`
	CurrentIndex     int                     `json:"current_index"`
	QuestionCount    int                     `json:"question_count"`
	Answers          map[string]string       `json:"answers"`
	AutoSubmitted    bool                    `json:"auto_submitted"`
	AutoSubmitReason string                  `json:"auto_submit_reason,omitempty"`
	Result           *model.SubmissionResult `json:"result,omitempty"`
}

// Controller owns the full state of one proctored test session. Every entry
// point — WebSocket messages, timer ticks, REST reads — serializes through
// one mutex, so signals arriving in bursts are totally ordered. Calls to the
// Client and the upstream services always happen outside the lock.
type Controller struct {
	cfg       Config
	client    Client
	loader    QuestionService
	submitter SubmissionService
	recorder  Recorder
	rng       *rand.Rand
	log       zerolog.Logger

	mu           sync.Mutex
	phase        Phase
	frozen       []model.Question
	instructions string
	ledger       answerLedger
	current      int
	remaining    int
	mon          monitor
	gate         gate

	loadInFlight   bool
	submitInFlight bool
	autoSubmitted  bool
	autoReason     string
	result         *model.SubmissionResult

	timerStop    chan struct{}
	timerStopped bool
	torndown     bool
}

// New creates a controller in the not-started phase.
func New(client Client, loader QuestionService, submitter SubmissionService, recorder Recorder, cfg Config, log zerolog.Logger) *Controller {
	if cfg.Duration <= 0 {
		cfg.Duration = defaultDuration
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTick
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Controller{
		cfg:       cfg,
		client:    client,
		loader:    loader,
		submitter: submitter,
		recorder:  recorder,
		rng:       rng,
		log:       log.With().Str("component", "controller").Str("session_id", cfg.SessionID).Logger(),
		phase:     PhaseNotStarted,
		ledger:    newLedger(),
		mon:       newMonitor(),
	}
}

// AcquireMedia asks the device for camera+microphone and records the outcome.
// Retryable; failures are classified as *MediaError.
func (c *Controller) AcquireMedia(ctx context.Context) error {
	if err := c.client.AcquireMedia(ctx); err != nil {
		detail := "unknown"
		var me *MediaError
		if errors.As(err, &me) {
			detail = string(me.Kind)
		}
		c.record(model.EventMediaDenied, detail)
		return err
	}
	c.record(model.EventMediaGranted, "")
	return nil
}

// Start loads the paper, freezes a fresh shuffle, arms the integrity monitor
// and starts the countdown. Active camera and microphone streams are a hard
// precondition; a load failure leaves the phase at not-started so Start can
// be retried (and re-shuffles on the next attempt).
func (c *Controller) Start(ctx context.Context) (*StartedView, error) {
	c.mu.Lock()
	switch {
	case c.torndown || c.phase == PhaseSubmitted:
		c.mu.Unlock()
		return nil, ErrSessionOver
	case c.phase == PhaseInProgress:
		c.mu.Unlock()
		return nil, ErrAlreadyStarted
	case c.loadInFlight:
		c.mu.Unlock()
		return nil, ErrLoadInFlight
	}
	if !c.client.MediaActive() {
		c.mu.Unlock()
		return nil, ErrMediaRequired
	}
	c.loadInFlight = true
	c.mu.Unlock()

	set, err := c.loader.LoadQuestions(ctx, c.cfg.SessionID)

	c.mu.Lock()
	c.loadInFlight = false
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if c.torndown {
		c.mu.Unlock()
		return nil, ErrSessionOver
	}

	c.frozen = shuffleQuestions(set.Questions, c.rng)
	c.instructions = set.Instructions
	if c.instructions == "" {
		c.instructions = defaultInstructions
	}
	c.ledger = newLedger()
	c.current = 0
	c.remaining = int(c.cfg.Duration / time.Second)
	c.result = nil
	c.phase = PhaseInProgress
	c.mon.arm()
	spec := c.mon.armSpec()
	c.startTimerLocked()

	view := &StartedView{
		Questions:        make([]model.ClientQuestion, 0, len(c.frozen)),
		Instructions:     c.instructions,
		RemainingSeconds: c.remaining,
	}
	for _, q := range c.frozen {
		view.Questions = append(view.Questions, q.ForClient())
	}
	c.mu.Unlock()

	c.client.Arm(spec)
	if err := c.client.EnterFullscreen(ctx); err != nil {
		c.log.Warn().Err(err).Msg("Fullscreen request failed at start")
		c.client.Notify("error", "Could not enter fullscreen mode automatically. Please enable it manually (usually F11); it is required for the test.")
	}
	c.record(model.EventSessionStarted, "")
	c.log.Info().Int("questions", len(view.Questions)).Msg("Session started")
	return view, nil
}

// SetAnswer records the applicant's latest input for a question. No-op
// outside in-progress, while a dialog is open, while submitting, or for
// question IDs the frozen paper does not contain.
func (c *Controller) SetAnswer(questionID, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseInProgress || c.submitInFlight || c.gate.isOpen() {
		return
	}
	if !c.knownQuestionLocked(questionID) {
		return
	}
	c.ledger.set(questionID, value)
}

// Goto moves the current question index within the frozen order.
func (c *Controller) Goto(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseInProgress || c.submitInFlight || c.gate.isOpen() {
		return
	}
	if index < 0 || index >= len(c.frozen) {
		return
	}
	c.current = index
}

// RequestSubmit opens the manual submission confirmation. It reuses the
// violation gate, so it cannot stack on an open violation and a violation
// cannot stack on it.
func (c *Controller) RequestSubmit() {
	c.mu.Lock()
	if c.phase != PhaseInProgress || c.submitInFlight {
		c.mu.Unlock()
		return
	}
	rec := &violationRecord{
		dialog:     Dialog{Kind: DialogConfirmSubmit, Reason: confirmSubmitQuestion, Cancelable: true},
		cancelable: true,
		onConfirm:  func() { c.submit(context.Background(), false, "") },
	}
	if !c.gate.open(rec) {
		c.mu.Unlock()
		return
	}
	c.mon.violationOpened()
	c.mu.Unlock()

	c.client.ShowDialog(rec.dialog)
}

// HandleSignal feeds one environment observation through the integrity
// monitor. Suppressed actions and unload attempts are recorded only; a
// violation opens the single confirmation record. Detections while a record
// is already open are dropped, not queued.
func (c *Controller) HandleSignal(sig Signal) {
	c.mu.Lock()
	if c.torndown {
		c.mu.Unlock()
		return
	}
	cls := c.mon.classify(sig)

	switch cls.Outcome {
	case OutcomeSuppress:
		c.mu.Unlock()
		c.record(model.EventSuppressedAction, cls.Detail)
		return

	case OutcomeUnloadWarn:
		c.mu.Unlock()
		c.record(model.EventUnloadAttempt, cls.Detail)
		return

	case OutcomeViolation:
		if c.phase != PhaseInProgress || c.submitInFlight {
			c.mu.Unlock()
			return
		}
		submitReason := cls.SubmitReason
		rec := &violationRecord{
			dialog:     Dialog{Kind: DialogViolation, Reason: cls.Reason, Cancelable: cls.Cancelable},
			cancelable: cls.Cancelable,
			onConfirm:  func() { c.submit(context.Background(), true, submitReason) },
		}
		if cls.Cancelable {
			// Fullscreen exit: cancel attempts silent re-entry; if
			// that fails submission proceeds anyway.
			rec.onCancel = func() { c.reenterFullscreen(context.Background(), submitReason) }
		}
		if !c.gate.open(rec) {
			c.mu.Unlock()
			return
		}
		c.mon.violationOpened()
		c.mu.Unlock()

		c.record(model.EventViolationOpened, cls.Detail)
		c.client.ShowDialog(rec.dialog)
		return
	}

	c.mu.Unlock()
}

// Resolve closes the open confirmation record and runs the chosen side
// effect. Closing always precedes the callback, so a burst of signals during
// resolution can never find a half-open gate. Non-cancelable records treat
// any resolution as confirmation.
func (c *Controller) Resolve(confirm bool) {
	c.mu.Lock()
	rec := c.gate.take()
	if rec == nil {
		c.mu.Unlock()
		return
	}
	c.mon.violationClosed()
	c.mu.Unlock()

	c.client.CloseDialog()

	if !confirm && rec.cancelable {
		c.record(model.EventViolationResolved, "cancelled")
		if rec.onCancel != nil {
			rec.onCancel()
		}
		return
	}
	c.record(model.EventViolationResolved, "confirmed")
	rec.onConfirm()
}

// reenterFullscreen is the compensating action for the fullscreen-exit
// cancel path.
func (c *Controller) reenterFullscreen(ctx context.Context, submitReason string) {
	if err := c.client.EnterFullscreen(ctx); err != nil {
		c.log.Warn().Err(err).Msg("Fullscreen re-entry failed, forcing submission")
		c.submit(ctx, true, submitReason)
	}
}

// tick advances the countdown by one second. It does not run outside
// in-progress, while a record is open, while a submission is in flight, or
// once zero has been reached — so expiry fires exactly once and time never
// goes negative.
func (c *Controller) tick(ctx context.Context) {
	c.mu.Lock()
	if c.phase != PhaseInProgress || c.gate.isOpen() || c.submitInFlight || c.remaining <= 0 {
		c.mu.Unlock()
		return
	}
	c.remaining--
	rem := c.remaining
	c.mu.Unlock()

	c.client.SyncTime(rem)
	if rem == 0 {
		c.client.Notify("info", "Time's up! Your test will be submitted automatically.")
		c.submit(ctx, true, SubmitReasonTimeout)
	}
}

// submit is the single chokepoint every termination path funnels through:
// manual confirmation, timer expiry and escalated violations. The in-flight
// guard makes it idempotent against re-entry; the first caller to acquire it
// wins and all others become no-ops.
func (c *Controller) submit(ctx context.Context, isAuto bool, reason string) {
	c.mu.Lock()
	if c.phase != PhaseInProgress || c.submitInFlight {
		c.mu.Unlock()
		return
	}
	c.submitInFlight = true
	req := model.SubmissionRequest{
		SessionID:       c.cfg.SessionID,
		Answers:         c.ledger.forSubmission(c.frozen),
		IsAutoSubmitted: isAuto,
	}
	if isAuto {
		req.AutoSubmitReason = reason
	}
	c.mu.Unlock()

	if c.client.FullscreenActive() {
		c.client.ExitFullscreen(ctx)
	}

	attempts := 1
	if isAuto {
		attempts = autoSubmitAttempts
	}

	var (
		res *model.SubmissionResult
		err error
	)
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(c.cfg.RetryDelay)
		}
		res, err = c.submitter.SubmitAnswers(ctx, req)
		if err == nil && res.Success {
			break
		}
		c.log.Warn().Err(err).Int("attempt", i+1).Msg("Submission attempt failed")
	}

	if err != nil || !res.Success {
		// Release the guard: answers are intact, the applicant (or the
		// next forced trigger) may retry.
		c.mu.Lock()
		c.submitInFlight = false
		c.mu.Unlock()

		msg := "Could not submit your test. Please try again or contact support."
		if err == nil && res.Message != "" {
			msg = res.Message
		}
		c.record(model.EventSubmitFailed, reason)
		c.client.Notify("error", msg)
		return
	}

	c.mu.Lock()
	c.phase = PhaseSubmitted
	c.autoSubmitted = isAuto
	c.autoReason = req.AutoSubmitReason
	c.result = res
	c.submitInFlight = false
	c.stopTimerLocked()
	c.mon.disarm()
	c.gate.take()
	c.mu.Unlock()

	c.client.Disarm()
	c.client.StopMedia()
	if c.client.FullscreenActive() {
		c.client.ExitFullscreen(ctx)
	}
	c.client.Submitted(*res)

	detail := submitReasonManual
	if isAuto {
		detail = reason
	}
	c.record(model.EventSubmitted, detail)
	c.log.Info().Bool("auto", isAuto).Str("reason", reason).Msg("Session submitted")
}

// Teardown releases everything the session acquired: timer, listeners, media
// tracks, fullscreen. Safe to call from any phase and exactly as effective on
// an abrupt disconnect as on a clean finish. Idempotent.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if c.torndown {
		c.mu.Unlock()
		return
	}
	c.torndown = true
	wasLive := c.phase == PhaseInProgress
	c.stopTimerLocked()
	c.mon.disarm()
	hadDialog := c.gate.take() != nil
	c.mu.Unlock()

	c.client.Disarm()
	if hadDialog {
		c.client.CloseDialog()
	}
	c.client.StopMedia()
	if c.client.FullscreenActive() {
		c.client.ExitFullscreen(context.Background())
	}
	if wasLive {
		c.record(model.EventSessionTornDown, "")
		c.log.Info().Msg("Session torn down mid-flight")
	}
}

// State returns a consistent snapshot for reload support and monitoring.
func (c *Controller) State() StateView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StateView{
		SessionID:        c.cfg.SessionID,
		Phase:            c.phase,
		RemainingSeconds: c.remaining,
		CurrentIndex:     c.current,
		QuestionCount:    len(c.frozen),
		Answers:          c.ledger.snapshot(),
		AutoSubmitted:    c.autoSubmitted,
		AutoSubmitReason: c.autoReason,
		Result:           c.result,
	}
}

// Result returns the terminal submission result, or nil before submission.
func (c *Controller) Result() *model.SubmissionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) knownQuestionLocked(questionID string) bool {
	for _, q := range c.frozen {
		if strconv.Itoa(q.ID) == questionID {
			return true
		}
	}
	return false
}

func (c *Controller) startTimerLocked() {
	c.timerStop = make(chan struct{})
	c.timerStopped = false
	go c.runTimer(c.cfg.TickInterval, c.timerStop)
}

func (c *Controller) stopTimerLocked() {
	if c.timerStop != nil && !c.timerStopped {
		close(c.timerStop)
		c.timerStopped = true
	}
}

func (c *Controller) runTimer(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			c.tick(context.Background())
		}
	}
}

// record emits best-effort telemetry. Never called under the mutex.
func (c *Controller) record(kind model.EventKind, detail string) {
	now := time.Now()
	c.recorder.Record(model.ProctorEvent{
		SessionID: c.cfg.SessionID,
		Kind:      kind,
		Detail:    detail,
		At:        now,
		Timestamp: now.Unix(),
	})
}

package proctor

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/model"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeClient struct {
	mu sync.Mutex

	media      bool
	mediaErr   error
	fullscreen bool
	fsErr      error

	armed       bool
	dialog      *Dialog
	dialogOpens int
	times       []int
	result      *model.SubmissionResult
	notices     []string
	stopCalls   int
	fsEnters    int
}

func (f *fakeClient) AcquireMedia(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mediaErr != nil {
		return f.mediaErr
	}
	f.media = true
	return nil
}

func (f *fakeClient) MediaActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.media
}

func (f *fakeClient) StopMedia() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.media = false
	f.stopCalls++
}

func (f *fakeClient) EnterFullscreen(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fsEnters++
	if f.fsErr != nil {
		return f.fsErr
	}
	f.fullscreen = true
	return nil
}

func (f *fakeClient) ExitFullscreen(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullscreen = false
}

func (f *fakeClient) FullscreenActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullscreen
}

func (f *fakeClient) Arm(spec ArmSpec) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.armed = true
}

func (f *fakeClient) Disarm() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.armed = false
}

func (f *fakeClient) ShowDialog(d Dialog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d2 := d
	f.dialog = &d2
	f.dialogOpens++
}

func (f *fakeClient) CloseDialog() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dialog = nil
}

func (f *fakeClient) SyncTime(remaining int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.times = append(f.times, remaining)
}

func (f *fakeClient) Submitted(res model.SubmissionResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := res
	f.result = &r
}

func (f *fakeClient) Notify(level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, level+": "+message)
}

func (f *fakeClient) openDialog() *Dialog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dialog
}

type fakeLoader struct {
	set      *QuestionSet
	err      error
	failures int
	calls    int
}

func (f *fakeLoader) LoadQuestions(ctx context.Context, sessionID string) (*QuestionSet, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("upstream unavailable")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

type fakeSubmitter struct {
	mu       sync.Mutex
	failures int
	calls    int
	last     model.SubmissionRequest
	block    chan struct{}
	result   *model.SubmissionResult
}

func (f *fakeSubmitter) SubmitAnswers(ctx context.Context, req model.SubmissionRequest) (*model.SubmissionResult, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("submission endpoint down")
	}
	if f.result != nil {
		return f.result, nil
	}
	return &model.SubmissionResult{Success: true, Message: "Test submitted successfully"}, nil
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSubmitter) lastRequest() model.SubmissionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type memRecorder struct {
	mu     sync.Mutex
	events []model.ProctorEvent
}

func (r *memRecorder) Record(ev model.ProctorEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *memRecorder) count(kind model.EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// ─── Harness ─────────────────────────────────────────────────────────────────

func paper(n int) *QuestionSet {
	qs := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, model.Question{
			ID:            i,
			Text:          "Question " + strconv.Itoa(i),
			Kind:          model.QuestionKindMultipleChoice,
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
		})
	}
	return &QuestionSet{Questions: qs, Instructions: "Answer everything."}
}

type harness struct {
	ctrl      *Controller
	client    *fakeClient
	loader    *fakeLoader
	submitter *fakeSubmitter
	recorder  *memRecorder
}

func newHarness(t *testing.T, questions int) *harness {
	t.Helper()
	h := &harness{
		client:    &fakeClient{},
		loader:    &fakeLoader{set: paper(questions)},
		submitter: &fakeSubmitter{},
		recorder:  &memRecorder{},
	}
	h.ctrl = New(h.client, h.loader, h.submitter, h.recorder, Config{
		SessionID: "sess-1",
		Duration:  120 * time.Minute,
		// Keep the real timer out of the way; tests drive tick directly.
		TickInterval: time.Hour,
		RetryDelay:   time.Millisecond,
		Rand:         rand.New(rand.NewSource(42)),
	}, zerolog.Nop())
	t.Cleanup(h.ctrl.Teardown)
	return h
}

func (h *harness) start(t *testing.T) *StartedView {
	t.Helper()
	if err := h.ctrl.AcquireMedia(context.Background()); err != nil {
		t.Fatalf("AcquireMedia: %v", err)
	}
	view, err := h.ctrl.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return view
}

// ─── Lifecycle ───────────────────────────────────────────────────────────────

func TestStartRequiresActiveMedia(t *testing.T) {
	h := newHarness(t, 3)

	if _, err := h.ctrl.Start(context.Background()); !errors.Is(err, ErrMediaRequired) {
		t.Fatalf("expected ErrMediaRequired, got %v", err)
	}
	if h.loader.calls != 0 {
		t.Errorf("loader called %d times before media was granted", h.loader.calls)
	}
}

func TestStartDeliversSanitizedPaper(t *testing.T) {
	h := newHarness(t, 5)
	view := h.start(t)

	if len(view.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(view.Questions))
	}
	if view.RemainingSeconds != 120*60 {
		t.Errorf("expected %d remaining seconds, got %d", 120*60, view.RemainingSeconds)
	}
	if view.Instructions != "Answer everything." {
		t.Errorf("unexpected instructions %q", view.Instructions)
	}
	if !h.client.armed {
		t.Error("client was not armed")
	}
	if !h.client.FullscreenActive() {
		t.Error("fullscreen was not entered")
	}
	if h.recorder.count(model.EventSessionStarted) != 1 {
		t.Error("session_started event not recorded")
	}
}

func TestStartTwiceFails(t *testing.T) {
	h := newHarness(t, 2)
	h.start(t)

	if _, err := h.ctrl.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestStartRetriesAfterLoadFailure(t *testing.T) {
	h := newHarness(t, 3)
	h.loader.failures = 1

	if err := h.ctrl.AcquireMedia(context.Background()); err != nil {
		t.Fatalf("AcquireMedia: %v", err)
	}
	if _, err := h.ctrl.Start(context.Background()); err == nil {
		t.Fatal("expected first Start to fail")
	}
	if got := h.ctrl.State().Phase; got != PhaseNotStarted {
		t.Fatalf("phase after failed load = %q, want %q", got, PhaseNotStarted)
	}

	if _, err := h.ctrl.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if got := h.ctrl.State().Phase; got != PhaseInProgress {
		t.Fatalf("phase = %q, want %q", got, PhaseInProgress)
	}
}

func TestMediaDenialClassified(t *testing.T) {
	h := newHarness(t, 1)
	h.client.mediaErr = ClassifyMediaError("NotAllowedError")

	err := h.ctrl.AcquireMedia(context.Background())
	var me *MediaError
	if !errors.As(err, &me) || me.Kind != MediaPermissionDenied {
		t.Fatalf("expected permission-denied MediaError, got %v", err)
	}
	if h.recorder.count(model.EventMediaDenied) != 1 {
		t.Error("media_denied event not recorded")
	}
}

// ─── Answering ───────────────────────────────────────────────────────────────

func TestSubmissionOmitsBlankAnswers(t *testing.T) {
	h := newHarness(t, 4)
	h.start(t)

	h.ctrl.SetAnswer("1", "B")
	h.ctrl.SetAnswer("2", "   ")  // whitespace only, dropped at submission
	h.ctrl.SetAnswer("3", "C")
	h.ctrl.SetAnswer("3", "D")    // overwrite wins
	h.ctrl.SetAnswer("99", "X")   // not in the paper, ignored
	h.ctrl.SetAnswer("", "X")

	h.ctrl.RequestSubmit()
	h.ctrl.Resolve(true)

	req := h.submitter.lastRequest()
	want := map[string]string{"1": "B", "3": "D"}
	if len(req.Answers) != len(want) {
		t.Fatalf("answers = %v, want %v", req.Answers, want)
	}
	for k, v := range want {
		if req.Answers[k] != v {
			t.Errorf("answers[%q] = %q, want %q", k, req.Answers[k], v)
		}
	}
	if req.IsAutoSubmitted {
		t.Error("manual submission flagged as auto")
	}
}

func TestAnsweringFrozenWhileDialogOpen(t *testing.T) {
	h := newHarness(t, 2)
	h.start(t)
	h.ctrl.SetAnswer("1", "A")

	h.ctrl.HandleSignal(Signal{Kind: SignalVisibilityHidden})
	h.ctrl.SetAnswer("1", "B")
	h.ctrl.Goto(1)

	st := h.ctrl.State()
	if st.Answers["1"] != "A" {
		t.Errorf("answer changed while dialog open: %q", st.Answers["1"])
	}
	if st.CurrentIndex != 0 {
		t.Errorf("navigation moved while dialog open: %d", st.CurrentIndex)
	}
}

func TestGotoBounds(t *testing.T) {
	h := newHarness(t, 3)
	h.start(t)

	h.ctrl.Goto(2)
	if got := h.ctrl.State().CurrentIndex; got != 2 {
		t.Fatalf("index = %d, want 2", got)
	}
	h.ctrl.Goto(-1)
	h.ctrl.Goto(3)
	if got := h.ctrl.State().CurrentIndex; got != 2 {
		t.Errorf("out-of-range Goto moved index to %d", got)
	}
}

// ─── Timer ───────────────────────────────────────────────────────────────────

func TestTimerExpiryForcesSubmission(t *testing.T) {
	h := newHarness(t, 1)
	h.ctrl.cfg.Duration = 2 * time.Second
	h.start(t)

	h.ctrl.tick(context.Background())
	if h.submitter.callCount() != 0 {
		t.Fatal("submitted before expiry")
	}
	h.ctrl.tick(context.Background())

	req := h.submitter.lastRequest()
	if !req.IsAutoSubmitted || req.AutoSubmitReason != SubmitReasonTimeout {
		t.Fatalf("expected forced submission with %q, got auto=%v reason=%q",
			SubmitReasonTimeout, req.IsAutoSubmitted, req.AutoSubmitReason)
	}

	// Further ticks must be inert.
	h.ctrl.tick(context.Background())
	h.ctrl.tick(context.Background())
	if h.submitter.callCount() != 1 {
		t.Errorf("submitter called %d times, want 1", h.submitter.callCount())
	}
	if got := h.ctrl.State().RemainingSeconds; got != 0 {
		t.Errorf("remaining went to %d, never below zero allowed", got)
	}
}

func TestTimerPausedWhileDialogOpen(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)
	before := h.ctrl.State().RemainingSeconds

	h.ctrl.HandleSignal(Signal{Kind: SignalWindowBlur})
	h.ctrl.tick(context.Background())
	h.ctrl.tick(context.Background())

	if got := h.ctrl.State().RemainingSeconds; got != before {
		t.Fatalf("countdown moved from %d to %d while a record was open", before, got)
	}

	h.ctrl.Resolve(true) // confirm, forces submission
	if h.submitter.callCount() != 1 {
		t.Errorf("submitter called %d times, want 1", h.submitter.callCount())
	}
}

// ─── Violations ──────────────────────────────────────────────────────────────

func TestViolationRecordIsSingleton(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)

	h.ctrl.HandleSignal(Signal{Kind: SignalVisibilityHidden})
	h.ctrl.HandleSignal(Signal{Kind: SignalWindowBlur})
	h.ctrl.HandleSignal(Signal{Kind: SignalFullscreenChange, FullscreenActive: false})

	if h.client.dialogOpens != 1 {
		t.Fatalf("dialog opened %d times, want 1", h.client.dialogOpens)
	}
	if h.recorder.count(model.EventViolationOpened) != 1 {
		t.Errorf("violation_opened recorded %d times, want 1", h.recorder.count(model.EventViolationOpened))
	}
	d := h.client.openDialog()
	if d == nil || d.Reason != reasonTabSwitched {
		t.Errorf("open dialog = %+v, want first violation to win", d)
	}
}

func TestBlurTowardDialogIgnored(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)

	h.ctrl.HandleSignal(Signal{Kind: SignalWindowBlur, DialogFocused: true})
	if h.client.dialogOpens != 0 {
		t.Fatal("focus moving onto the dialog must not open a violation")
	}
}

func TestViolationConfirmForcesSubmission(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)

	h.ctrl.HandleSignal(Signal{Kind: SignalWindowBlur})
	h.ctrl.Resolve(true)

	req := h.submitter.lastRequest()
	if !req.IsAutoSubmitted || req.AutoSubmitReason != submitReasonFocus {
		t.Fatalf("auto=%v reason=%q, want forced submission for lost focus",
			req.IsAutoSubmitted, req.AutoSubmitReason)
	}
	if got := h.ctrl.State().Phase; got != PhaseSubmitted {
		t.Errorf("phase = %q, want %q", got, PhaseSubmitted)
	}
}

func TestNonCancelableViolationSubmitsOnAnyResolution(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)

	h.ctrl.HandleSignal(Signal{Kind: SignalVisibilityHidden})
	h.ctrl.Resolve(false) // tab switches offer no way out

	if h.submitter.callCount() != 1 {
		t.Fatalf("submitter called %d times, want 1", h.submitter.callCount())
	}
	if req := h.submitter.lastRequest(); req.AutoSubmitReason != submitReasonTab {
		t.Errorf("reason = %q, want %q", req.AutoSubmitReason, submitReasonTab)
	}
}

func TestFullscreenExitCancelResumesSession(t *testing.T) {
	h := newHarness(t, 2)
	h.start(t)
	h.client.ExitFullscreen(context.Background())

	h.ctrl.HandleSignal(Signal{Kind: SignalFullscreenChange, FullscreenActive: false})
	d := h.client.openDialog()
	if d == nil || !d.Cancelable {
		t.Fatalf("fullscreen exit dialog = %+v, want cancelable", d)
	}

	h.ctrl.Resolve(false)

	if h.submitter.callCount() != 0 {
		t.Fatal("cancel with successful re-entry must not submit")
	}
	if !h.client.FullscreenActive() {
		t.Error("fullscreen was not re-entered")
	}
	if got := h.ctrl.State().Phase; got != PhaseInProgress {
		t.Errorf("phase = %q, want %q", got, PhaseInProgress)
	}

	// Monitor must be armed again: a fresh violation opens a fresh record.
	h.ctrl.HandleSignal(Signal{Kind: SignalVisibilityHidden})
	if h.client.dialogOpens != 2 {
		t.Errorf("dialog opened %d times, want 2", h.client.dialogOpens)
	}
}

func TestFullscreenReentryFailureForcesSubmission(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)
	h.client.mu.Lock()
	h.client.fullscreen = false
	h.client.fsErr = errors.New("permission revoked")
	h.client.mu.Unlock()

	h.ctrl.HandleSignal(Signal{Kind: SignalFullscreenChange, FullscreenActive: false})
	h.ctrl.Resolve(false)

	req := h.submitter.lastRequest()
	if !req.IsAutoSubmitted || req.AutoSubmitReason != submitReasonFullexit {
		t.Fatalf("auto=%v reason=%q, want forced submission after failed re-entry",
			req.IsAutoSubmitted, req.AutoSubmitReason)
	}
}

func TestSuppressedActionsRecordedNotEscalated(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)

	h.ctrl.HandleSignal(Signal{Kind: SignalKeyDown, Key: "c", Ctrl: true})
	h.ctrl.HandleSignal(Signal{Kind: SignalKeyDown, Key: "F12"})
	h.ctrl.HandleSignal(Signal{Kind: SignalContextMenu})
	h.ctrl.HandleSignal(Signal{Kind: SignalKeyDown, Key: "a"}) // plain typing

	if h.client.dialogOpens != 0 {
		t.Fatal("suppressed actions must never open a violation")
	}
	if got := h.recorder.count(model.EventSuppressedAction); got != 3 {
		t.Errorf("suppressed_action recorded %d times, want 3", got)
	}
}

func TestSignalsBeforeStartIgnored(t *testing.T) {
	h := newHarness(t, 1)

	h.ctrl.HandleSignal(Signal{Kind: SignalVisibilityHidden})
	h.ctrl.HandleSignal(Signal{Kind: SignalWindowBlur})

	if h.client.dialogOpens != 0 {
		t.Fatal("signals before arming must be ignored")
	}
}

func TestUnloadAttemptOnlyRecorded(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)

	h.ctrl.HandleSignal(Signal{Kind: SignalBeforeUnload})

	if h.client.dialogOpens != 0 || h.submitter.callCount() != 0 {
		t.Fatal("unload attempt must not open a dialog or submit")
	}
	if h.recorder.count(model.EventUnloadAttempt) != 1 {
		t.Error("unload_attempt event not recorded")
	}
}

// ─── Submission ──────────────────────────────────────────────────────────────

func TestManualSubmitCancelContinues(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)

	h.ctrl.RequestSubmit()
	d := h.client.openDialog()
	if d == nil || d.Kind != DialogConfirmSubmit || !d.Cancelable {
		t.Fatalf("confirm dialog = %+v", d)
	}

	h.ctrl.Resolve(false)
	if h.submitter.callCount() != 0 {
		t.Fatal("cancelled confirmation must not submit")
	}
	if got := h.ctrl.State().Phase; got != PhaseInProgress {
		t.Errorf("phase = %q, want %q", got, PhaseInProgress)
	}
}

func TestSubmissionExactlyOnceUnderRace(t *testing.T) {
	h := newHarness(t, 1)
	h.submitter.block = make(chan struct{})
	h.start(t)

	h.ctrl.RequestSubmit()
	done := make(chan struct{})
	go func() {
		h.ctrl.Resolve(true)
		close(done)
	}()

	// While the first submission is in flight, every other trigger must be
	// a no-op.
	time.Sleep(20 * time.Millisecond)
	h.ctrl.HandleSignal(Signal{Kind: SignalVisibilityHidden})
	h.ctrl.RequestSubmit()
	h.ctrl.tick(context.Background())

	close(h.submitter.block)
	<-done

	if h.submitter.callCount() != 1 {
		t.Fatalf("submitter called %d times, want exactly 1", h.submitter.callCount())
	}
	if got := h.ctrl.State().Phase; got != PhaseSubmitted {
		t.Errorf("phase = %q, want %q", got, PhaseSubmitted)
	}
}

func TestManualSubmitFailureRecoverable(t *testing.T) {
	h := newHarness(t, 1)
	h.submitter.failures = 1
	h.start(t)
	h.ctrl.SetAnswer("1", "B")

	h.ctrl.RequestSubmit()
	h.ctrl.Resolve(true)

	if got := h.ctrl.State().Phase; got != PhaseInProgress {
		t.Fatalf("phase after failed submission = %q, want %q", got, PhaseInProgress)
	}
	if h.recorder.count(model.EventSubmitFailed) != 1 {
		t.Error("submit_failed event not recorded")
	}
	if st := h.ctrl.State(); st.Answers["1"] != "B" {
		t.Error("answers lost after failed submission")
	}

	// Retry succeeds.
	h.ctrl.RequestSubmit()
	h.ctrl.Resolve(true)
	if got := h.ctrl.State().Phase; got != PhaseSubmitted {
		t.Fatalf("phase after retry = %q, want %q", got, PhaseSubmitted)
	}
}

func TestForcedSubmissionRetriesAutomatically(t *testing.T) {
	h := newHarness(t, 1)
	h.submitter.failures = 2
	h.ctrl.cfg.Duration = time.Second
	h.start(t)

	h.ctrl.tick(context.Background())

	if got := h.submitter.callCount(); got != 3 {
		t.Fatalf("submitter called %d times, want 3 (two retries)", got)
	}
	if got := h.ctrl.State().Phase; got != PhaseSubmitted {
		t.Errorf("phase = %q, want %q", got, PhaseSubmitted)
	}
}

func TestSuccessfulSubmissionTearsDownAcquisitions(t *testing.T) {
	h := newHarness(t, 1)
	h.submitter.result = &model.SubmissionResult{Success: true, Message: "Graded"}
	h.start(t)

	h.ctrl.RequestSubmit()
	h.ctrl.Resolve(true)

	if h.client.armed {
		t.Error("listeners still armed after submission")
	}
	if h.client.MediaActive() {
		t.Error("media still active after submission")
	}
	if h.client.FullscreenActive() {
		t.Error("fullscreen still active after submission")
	}
	if h.client.result == nil || h.client.result.Message != "Graded" {
		t.Errorf("result delivered to client = %+v", h.client.result)
	}
	if h.recorder.count(model.EventSubmitted) != 1 {
		t.Error("submitted event not recorded")
	}
}

// ─── Teardown ────────────────────────────────────────────────────────────────

func TestTeardownReleasesEverything(t *testing.T) {
	h := newHarness(t, 1)
	h.start(t)
	h.ctrl.HandleSignal(Signal{Kind: SignalWindowBlur})

	h.ctrl.Teardown()
	h.ctrl.Teardown() // idempotent

	if h.client.armed || h.client.MediaActive() || h.client.FullscreenActive() {
		t.Error("teardown left acquisitions behind")
	}
	if h.client.openDialog() != nil {
		t.Error("teardown left the dialog open")
	}
	if h.client.stopCalls != 1 {
		t.Errorf("StopMedia called %d times across two teardowns, want 1 effective stop", h.client.stopCalls)
	}
	if h.recorder.count(model.EventSessionTornDown) != 1 {
		t.Errorf("session_torn_down recorded %d times, want 1", h.recorder.count(model.EventSessionTornDown))
	}

	// Dead controller ignores everything.
	h.ctrl.HandleSignal(Signal{Kind: SignalVisibilityHidden})
	if h.client.dialogOpens != 1 {
		t.Errorf("dialog opened %d times, want 1 (none after teardown)", h.client.dialogOpens)
	}
	if _, err := h.ctrl.Start(context.Background()); !errors.Is(err, ErrSessionOver) {
		t.Errorf("Start after teardown = %v, want ErrSessionOver", err)
	}
}

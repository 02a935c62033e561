package proctor

// Violation reasons shown in the confirmation dialog and, in short form,
// attached to the forced submission.
const (
	reasonTabSwitched     = "Tab switched or window minimized. This is a violation."
	reasonFocusLost       = "Test window lost focus. This is a violation."
	reasonFullscreenExit  = "Fullscreen mode exited. This is a violation."
	submitReasonTab       = "Tab switched or window minimized"
	submitReasonFocus     = "Test window lost focus"
	submitReasonFullexit  = "Fullscreen mode exited"
	SubmitReasonTimeout   = "Time expired"
	submitReasonManual    = "Manual submission"
	confirmSubmitQuestion = "Are you sure you want to submit your test? This action cannot be undone."
)

type monitorState int

const (
	monitorIdle monitorState = iota
	monitorArmed
	monitorViolationOpen
)

// Outcome is the monitor's verdict on a signal.
type Outcome int

const (
	// OutcomeIgnore: not armed, or the signal is benign.
	OutcomeIgnore Outcome = iota
	// OutcomeSuppress: the action was blocked client-side; record it,
	// never escalate.
	OutcomeSuppress
	// OutcomeViolation: open a violation record.
	OutcomeViolation
	// OutcomeUnloadWarn: the browser shows its native leave prompt; the
	// gateway only records the attempt (scripted submission is not
	// possible during unload).
	OutcomeUnloadWarn
)

// Classification describes what a signal means while armed.
type Classification struct {
	Outcome      Outcome
	Reason       string // dialog text
	SubmitReason string // short reason attached to the forced submission
	Detail       string // machine label for the audit trail
	Cancelable   bool   // fullscreen exit offers a re-entry path
}

// monitor is the integrity state machine. It is not safe for concurrent use;
// the owning controller serializes access.
type monitor struct {
	state monitorState
	keys  KeyPolicy
}

func newMonitor() monitor {
	return monitor{state: monitorIdle, keys: DefaultKeyPolicy()}
}

func (m *monitor) arm()             { m.state = monitorArmed }
func (m *monitor) disarm()          { m.state = monitorIdle }
func (m *monitor) violationOpened() { m.state = monitorViolationOpen }

// violationClosed returns the monitor to armed; a terminal resolution disarms
// via the controller's teardown instead.
func (m *monitor) violationClosed() {
	if m.state == monitorViolationOpen {
		m.state = monitorArmed
	}
}

func (m *monitor) armed() bool { return m.state == monitorArmed }

// classify maps a signal to an outcome. Anything arriving while a violation
// record is open (or before arming) is dropped, not queued: exactly one
// record may be live at a time.
func (m *monitor) classify(sig Signal) Classification {
	if m.state != monitorArmed {
		return Classification{Outcome: OutcomeIgnore}
	}

	switch sig.Kind {
	case SignalVisibilityHidden:
		return Classification{
			Outcome:      OutcomeViolation,
			Reason:       reasonTabSwitched,
			SubmitReason: submitReasonTab,
			Detail:       "tab_hidden",
		}

	case SignalWindowBlur:
		if sig.DialogFocused {
			return Classification{Outcome: OutcomeIgnore}
		}
		return Classification{
			Outcome:      OutcomeViolation,
			Reason:       reasonFocusLost,
			SubmitReason: submitReasonFocus,
			Detail:       "window_blur",
		}

	case SignalFullscreenChange:
		if sig.FullscreenActive {
			return Classification{Outcome: OutcomeIgnore}
		}
		return Classification{
			Outcome:      OutcomeViolation,
			Reason:       reasonFullscreenExit,
			SubmitReason: submitReasonFullexit,
			Detail:       "fullscreen_exit",
			Cancelable:   true,
		}

	case SignalBeforeUnload:
		return Classification{Outcome: OutcomeUnloadWarn, Detail: "unload_attempt"}

	case SignalKeyDown:
		if m.keys.Blocks(sig) {
			return Classification{Outcome: OutcomeSuppress, Detail: "blocked_key:" + sig.Key}
		}
		return Classification{Outcome: OutcomeIgnore}

	case SignalContextMenu:
		return Classification{Outcome: OutcomeSuppress, Detail: "context_menu"}
	}

	return Classification{Outcome: OutcomeIgnore}
}

// armSpec describes what the client must install when the session arms.
func (m *monitor) armSpec() ArmSpec {
	return ArmSpec{Listeners: WatchedSignals, Keys: m.keys}
}

package proctor

import "testing"

func TestClassifyWhileIdle(t *testing.T) {
	m := newMonitor()

	for _, kind := range WatchedSignals {
		if got := m.classify(Signal{Kind: kind}); got.Outcome != OutcomeIgnore {
			t.Errorf("classify(%s) while idle = %v, want ignore", kind, got.Outcome)
		}
	}
}

func TestClassifyArmed(t *testing.T) {
	tests := []struct {
		name       string
		sig        Signal
		outcome    Outcome
		reason     string
		cancelable bool
	}{
		{"tab hidden", Signal{Kind: SignalVisibilityHidden}, OutcomeViolation, reasonTabSwitched, false},
		{"window blur", Signal{Kind: SignalWindowBlur}, OutcomeViolation, reasonFocusLost, false},
		{"blur onto dialog", Signal{Kind: SignalWindowBlur, DialogFocused: true}, OutcomeIgnore, "", false},
		{"fullscreen exit", Signal{Kind: SignalFullscreenChange, FullscreenActive: false}, OutcomeViolation, reasonFullscreenExit, true},
		{"fullscreen enter", Signal{Kind: SignalFullscreenChange, FullscreenActive: true}, OutcomeIgnore, "", false},
		{"unload", Signal{Kind: SignalBeforeUnload}, OutcomeUnloadWarn, "", false},
		{"context menu", Signal{Kind: SignalContextMenu}, OutcomeSuppress, "", false},
		{"blocked key", Signal{Kind: SignalKeyDown, Key: "c", Ctrl: true}, OutcomeSuppress, "", false},
		{"plain key", Signal{Kind: SignalKeyDown, Key: "a"}, OutcomeIgnore, "", false},
		{"unknown kind", Signal{Kind: SignalKind("gamepad")}, OutcomeIgnore, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMonitor()
			m.arm()
			got := m.classify(tt.sig)
			if got.Outcome != tt.outcome {
				t.Fatalf("outcome = %v, want %v", got.Outcome, tt.outcome)
			}
			if got.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", got.Reason, tt.reason)
			}
			if got.Cancelable != tt.cancelable {
				t.Errorf("cancelable = %v, want %v", got.Cancelable, tt.cancelable)
			}
		})
	}
}

func TestClassifyDroppedWhileViolationOpen(t *testing.T) {
	m := newMonitor()
	m.arm()
	m.violationOpened()

	if got := m.classify(Signal{Kind: SignalVisibilityHidden}); got.Outcome != OutcomeIgnore {
		t.Fatalf("signal during open violation = %v, want ignore", got.Outcome)
	}

	m.violationClosed()
	if got := m.classify(Signal{Kind: SignalVisibilityHidden}); got.Outcome != OutcomeViolation {
		t.Fatalf("signal after close = %v, want violation", got.Outcome)
	}
}

func TestViolationClosedAfterDisarmStaysIdle(t *testing.T) {
	m := newMonitor()
	m.arm()
	m.violationOpened()
	m.disarm()
	m.violationClosed()

	if m.armed() {
		t.Fatal("monitor rearmed itself after disarm")
	}
}

func TestKeyPolicyBlocks(t *testing.T) {
	p := DefaultKeyPolicy()

	blocked := []Signal{
		{Kind: SignalKeyDown, Key: "c", Ctrl: true},
		{Kind: SignalKeyDown, Key: "C", Ctrl: true}, // case-insensitive
		{Kind: SignalKeyDown, Key: "c", Meta: true}, // cmd on mac
		{Kind: SignalKeyDown, Key: "i", Ctrl: true, Shift: true},
		{Kind: SignalKeyDown, Key: "Tab", Alt: true},
		{Kind: SignalKeyDown, Key: "F5"},
		{Kind: SignalKeyDown, Key: "F12"},
		{Kind: SignalKeyDown, Key: "PrintScreen"},
		{Kind: SignalKeyDown, Key: "Delete"},
	}
	for _, sig := range blocked {
		if !p.Blocks(sig) {
			t.Errorf("expected %+v to be blocked", sig)
		}
	}

	allowed := []Signal{
		{Kind: SignalKeyDown, Key: "a"},
		{Kind: SignalKeyDown, Key: "Enter"},
		{Kind: SignalKeyDown, Key: "Tab"},       // plain tab navigates the form
		{Kind: SignalKeyDown, Key: "e", Alt: true},
		{Kind: SignalKeyDown, Key: "Fn"},        // not F<number>
		{Kind: SignalContextMenu},               // wrong kind
	}
	for _, sig := range allowed {
		if p.Blocks(sig) {
			t.Errorf("expected %+v to pass", sig)
		}
	}
}

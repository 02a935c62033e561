package proctor

import (
	"strconv"
	"strings"
)

// KeyPolicy is the keyboard suppression policy. It is shipped to the client
// when the session arms (the browser must preventDefault locally — a round
// trip is far too slow to block a keystroke) and applied again server-side to
// classify the echoed signal for the audit trail.
//
// Suppressed combinations are silently blocked, never escalated to a
// violation: several of them (Alt+Tab most obviously) cannot be fully blocked
// by a browser, and terminating a session over them would produce false
// positives.
type KeyPolicy struct {
	Ctrl         []string `json:"ctrl"`
	CtrlShift    []string `json:"ctrl_shift"`
	Alt          []string `json:"alt"`
	Bare         []string `json:"bare"`
	FunctionKeys bool     `json:"function_keys"`
}

// DefaultKeyPolicy blocks clipboard, save/print/find, refresh, new tab and
// window, zoom, devtools, navigation keys and function keys.
func DefaultKeyPolicy() KeyPolicy {
	return KeyPolicy{
		Ctrl: []string{
			"a", "c", "v", "x", "z", "y", "s", "p", "r", "t", "n", "w",
			"f", "h", "o", "l", "k", "g", "d", "b", "m", "q",
			"+", "-", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
		},
		CtrlShift: []string{"i", "j", "c", "k", "l", "e"},
		Alt:       []string{"Tab", "F4", "ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown", "Home"},
		Bare: []string{
			"PrintScreen", "ContextMenu", "ScrollLock", "Pause", "Insert",
			"Home", "End", "PageUp", "PageDown", "Delete", "Help",
		},
		FunctionKeys: true,
	}
}

// Blocks reports whether a key_down signal falls under the policy.
func (p KeyPolicy) Blocks(sig Signal) bool {
	if sig.Kind != SignalKeyDown {
		return false
	}

	lower := strings.ToLower(sig.Key)

	if (sig.Ctrl || sig.Meta) && sig.Shift && contains(p.CtrlShift, lower) {
		return true
	}
	if (sig.Ctrl || sig.Meta) && contains(p.Ctrl, lower) {
		return true
	}
	if sig.Alt && contains(p.Alt, sig.Key) {
		return true
	}
	if p.FunctionKeys && isFunctionKey(sig.Key) {
		return true
	}
	return contains(p.Bare, sig.Key)
}

func contains(list []string, key string) bool {
	for _, k := range list {
		if k == key {
			return true
		}
	}
	return false
}

// isFunctionKey matches F1..F24 style key names.
func isFunctionKey(key string) bool {
	if len(key) < 2 || key[0] != 'F' {
		return false
	}
	_, err := strconv.Atoi(key[1:])
	return err == nil
}

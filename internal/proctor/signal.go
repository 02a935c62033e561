package proctor

// SignalKind identifies a browser environment event forwarded by the client.
type SignalKind string

const (
	SignalVisibilityHidden SignalKind = "visibility_hidden"
	SignalWindowBlur       SignalKind = "window_blur"
	SignalFullscreenChange SignalKind = "fullscreen_change"
	SignalKeyDown          SignalKind = "key_down"
	SignalContextMenu      SignalKind = "context_menu"
	SignalBeforeUnload     SignalKind = "before_unload"
)

// WatchedSignals is the listener set the client installs when a session arms.
var WatchedSignals = []SignalKind{
	SignalVisibilityHidden,
	SignalWindowBlur,
	SignalFullscreenChange,
	SignalKeyDown,
	SignalContextMenu,
	SignalBeforeUnload,
}

// Signal is one environment observation. Only the fields relevant to its Kind
// are populated.
type Signal struct {
	Kind SignalKind

	// FullscreenActive reports document.fullscreenElement presence for
	// fullscreen_change signals.
	FullscreenActive bool

	// DialogFocused is set on window_blur when the focused element sits
	// inside the gateway's own confirmation dialog, which must not count
	// as losing the test window.
	DialogFocused bool

	// Keyboard fields for key_down signals.
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

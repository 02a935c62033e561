package proctor

import (
	"context"
	"fmt"

	"github.com/uniadmit/proctor-gateway/internal/model"
)

// MediaErrorKind classifies camera/microphone acquisition failures.
type MediaErrorKind string

const (
	MediaPermissionDenied MediaErrorKind = "permission-denied"
	MediaDeviceNotFound   MediaErrorKind = "device-not-found"
	MediaOther            MediaErrorKind = "other"
)

// MediaError is a classified device acquisition failure. Name carries the
// original DOMException name when the browser reported one.
type MediaError struct {
	Kind MediaErrorKind
	Name string
}

func (e *MediaError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("media acquisition failed: %s (%s)", e.Kind, e.Name)
	}
	return fmt.Sprintf("media acquisition failed: %s", e.Kind)
}

// ClassifyMediaError maps a browser error name to a failure kind.
func ClassifyMediaError(name string) *MediaError {
	switch name {
	case "NotAllowedError", "PermissionDeniedError":
		return &MediaError{Kind: MediaPermissionDenied, Name: name}
	case "NotFoundError", "DevicesNotFoundError":
		return &MediaError{Kind: MediaDeviceNotFound, Name: name}
	default:
		return &MediaError{Kind: MediaOther, Name: name}
	}
}

// DialogKind distinguishes punitive violation dialogs from the manual submit
// confirmation, which reuses the same gate with a different message.
type DialogKind string

const (
	DialogViolation     DialogKind = "violation"
	DialogConfirmSubmit DialogKind = "confirm_submit"
)

// Dialog is the confirmation surface the client must present. At most one is
// ever open.
type Dialog struct {
	Kind       DialogKind `json:"kind"`
	Reason     string     `json:"reason"`
	Cancelable bool       `json:"cancelable"`
}

// ArmSpec tells the client which listeners to install and which keyboard and
// mouse actions to suppress locally.
type ArmSpec struct {
	Listeners []SignalKind `json:"listeners"`
	Keys      KeyPolicy    `json:"keys"`
}

// Client is the browser-facing half of a session: everything the controller
// needs the applicant's device to do. Implementations must be safe to call
// from multiple goroutines and must never call back into the controller.
type Client interface {
	// AcquireMedia requests camera+microphone and binds the preview.
	// Returns *MediaError on failure. Retryable.
	AcquireMedia(ctx context.Context) error
	// MediaActive reports whether both streams are currently live.
	MediaActive() bool
	// StopMedia stops all tracks. Idempotent.
	StopMedia()

	// EnterFullscreen drives the device into fullscreen, negotiating
	// vendor-prefixed APIs as needed.
	EnterFullscreen(ctx context.Context) error
	ExitFullscreen(ctx context.Context)
	FullscreenActive() bool

	// Arm installs environment listeners and the suppression policy;
	// Disarm removes everything it installed. Both are idempotent.
	Arm(spec ArmSpec)
	Disarm()

	ShowDialog(d Dialog)
	CloseDialog()

	// SyncTime pushes the authoritative remaining seconds.
	SyncTime(remainingSeconds int)
	// Submitted delivers the terminal result (forced submissions finish
	// asynchronously from the applicant's point of view).
	Submitted(res model.SubmissionResult)
	// Notify raises a toast-level message. Level is "info" or "error".
	Notify(level, message string)
}

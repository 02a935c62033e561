package model

import "time"

// EventKind enumerates proctoring events recorded on the audit trail and the
// invigilator feed.
type EventKind string

const (
	EventSessionStarted    EventKind = "session_started"
	EventMediaGranted      EventKind = "media_granted"
	EventMediaDenied       EventKind = "media_denied"
	EventViolationOpened   EventKind = "violation_opened"
	EventViolationResolved EventKind = "violation_resolved"
	EventSuppressedAction  EventKind = "suppressed_action"
	EventUnloadAttempt     EventKind = "unload_attempt"
	EventSubmitted         EventKind = "submitted"
	EventSubmitFailed      EventKind = "submit_failed"
	EventSessionTornDown   EventKind = "session_torn_down"
)

// ProctorEvent is one observation from a live session. Events are best-effort
// telemetry: losing one never changes session outcome.
type ProctorEvent struct {
	SessionID string    `json:"session_id"`
	Kind      EventKind `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
	At        time.Time `json:"-"`
	Timestamp int64     `json:"timestamp"`
}

package websocket

import (
	"github.com/uniadmit/proctor-gateway/internal/model"
	"github.com/uniadmit/proctor-gateway/internal/proctor"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionStart        Action = "start"
	ActionAcquireMedia Action = "acquire_media"
	ActionAnswer       Action = "answer"
	ActionGoto         Action = "goto"
	ActionSignal       Action = "signal"
	ActionResolve      Action = "resolve"
	ActionSubmit       Action = "submit"
	ActionAck          Action = "ack"
	ActionState        Action = "state"
	ActionPing         Action = "ping"
)

// SignalPayload is one environment observation forwarded by the client.
type SignalPayload struct {
	Kind             string `json:"kind"`
	FullscreenActive bool   `json:"fullscreen_active,omitempty"`
	DialogFocused    bool   `json:"dialog_focused,omitempty"`
	Key              string `json:"key,omitempty"`
	Ctrl             bool   `json:"ctrl,omitempty"`
	Alt              bool   `json:"alt,omitempty"`
	Shift            bool   `json:"shift,omitempty"`
	Meta             bool   `json:"meta,omitempty"`
}

// RequestPayload is the single inbound envelope; only the fields relevant to
// Action are populated.
type RequestPayload struct {
	Action Action `json:"action"`

	// answer
	QID    string `json:"q_id,omitempty"`
	Answer string `json:"ans,omitempty"`

	// goto
	Index int `json:"index,omitempty"`

	// resolve
	Confirm bool `json:"confirm,omitempty"`

	// signal
	Signal *SignalPayload `json:"signal,omitempty"`

	// ack: completion report for a server-issued command
	CmdID     string `json:"cmd_id,omitempty"`
	OK        bool   `json:"ok,omitempty"`
	ErrorName string `json:"error_name,omitempty"` // DOMException name on failure
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventStarted     Event = "started"
	EventCommand     Event = "command"
	EventDialog      Event = "dialog"
	EventDialogClose Event = "dialog_close"
	EventTick        Event = "tick"
	EventSubmitted   Event = "submitted"
	EventNotice      Event = "notice"
	EventState       Event = "state"
	EventError       Event = "error"
	EventPong        Event = "pong"
)

// CommandOp is a browser-side operation the gateway orders the client to
// perform. enter_fullscreen and acquire_media are acked; the rest are
// fire-and-forget.
type CommandOp string

const (
	OpEnterFullscreen CommandOp = "enter_fullscreen"
	OpExitFullscreen  CommandOp = "exit_fullscreen"
	OpAcquireMedia    CommandOp = "acquire_media"
	OpStopMedia       CommandOp = "stop_media"
	OpArm             CommandOp = "arm"
	OpDisarm          CommandOp = "disarm"
)

// StartedResponse carries the sanitized paper after a successful start.
type StartedResponse struct {
	Event Event                `json:"event"`
	Data  *proctor.StartedView `json:"data"`
}

// CommandRequest orders the client to perform a browser-side operation.
// Acked operations must be answered with an ack action carrying CmdID.
type CommandRequest struct {
	Event Event            `json:"event"`
	CmdID string           `json:"cmd_id"`
	Op    CommandOp        `json:"op"`
	Spec  *proctor.ArmSpec `json:"spec,omitempty"` // arm only
}

// DialogResponse opens the confirmation dialog. EventDialogClose closes it.
type DialogResponse struct {
	Event  Event          `json:"event"`
	Dialog proctor.Dialog `json:"dialog"`
}

type DialogCloseResponse struct {
	Event Event `json:"event"`
}

// TickResponse pushes the authoritative remaining time.
type TickResponse struct {
	Event     Event `json:"event"`
	Remaining int   `json:"remaining"`
}

// SubmittedResponse delivers the terminal result.
type SubmittedResponse struct {
	Event  Event                  `json:"event"`
	Result model.SubmissionResult `json:"result"`
}

// NoticeResponse is a toast-level message. Level is "info" or "error".
type NoticeResponse struct {
	Event   Event  `json:"event"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// StateResponse answers a state action for reload support.
type StateResponse struct {
	Event Event             `json:"event"`
	Data  proctor.StateView `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

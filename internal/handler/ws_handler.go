package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/config"
	"github.com/uniadmit/proctor-gateway/internal/middleware"
	"github.com/uniadmit/proctor-gateway/internal/proctor"
	"github.com/uniadmit/proctor-gateway/internal/service"
	ws "github.com/uniadmit/proctor-gateway/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler owns the applicant session stream: one WebSocket connection per
// live test session, dispatching into the session controller.
type WSHandler struct {
	cfg         *config.Config
	registry    *service.Registry
	questions   *service.QuestionService
	submissions *service.SubmissionService
	recorder    *service.EventRecorder
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(cfg *config.Config, registry *service.Registry, questions *service.QuestionService, submissions *service.SubmissionService, recorder *service.EventRecorder, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		cfg:         cfg,
		registry:    registry,
		questions:   questions,
		submissions: submissions,
		recorder:    recorder,
		log:         log.With().Str("component", "ws_handler").Logger(),
		upgrader:    buildUpgrader(cfg.AllowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/sessions/:session_id/stream
// Upgrades to WebSocket and binds the connection to a session controller.
// The connection lifetime is the session lifetime: a drop tears everything
// down.
func (h *WSHandler) SessionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	sessionID := c.Param("session_id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("session_id", sessionID).Logger()

	client := ws.NewSessionClient(conn, wsLog)
	ctrl := proctor.New(client, h.questions, h.submissions, h.recorder, proctor.Config{
		SessionID: sessionID,
		Duration:  h.cfg.TestDuration,
	}, wsLog)

	if err := h.registry.Attach(sessionID, ctrl); err != nil {
		ws.WriteError(conn, err.Error())
		return
	}
	defer func() {
		h.registry.Detach(sessionID, ctrl)
		client.Shutdown()
		ctrl.Teardown()
		wsLog.Info().Msg("Applicant disconnected")
	}()

	wsLog.Info().Msg("Applicant connected")

	for {
		var msg ws.RequestPayload
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionStart:
			// Start issues acked commands (fullscreen) whose acks arrive
			// on this read loop, so it must not run inline.
			go h.handleStart(client, ctrl)
		case ws.ActionAcquireMedia:
			go h.handleAcquireMedia(client, ctrl)
		case ws.ActionAnswer:
			ctrl.SetAnswer(msg.QID, msg.Answer)
		case ws.ActionGoto:
			ctrl.Goto(msg.Index)
		case ws.ActionSignal:
			h.handleSignal(client, ctrl, &msg)
		case ws.ActionResolve:
			// Resolution may submit upstream, which blocks.
			go ctrl.Resolve(msg.Confirm)
		case ws.ActionSubmit:
			ctrl.RequestSubmit()
		case ws.ActionAck:
			client.HandleAck(msg.CmdID, msg.OK, msg.ErrorName)
		case ws.ActionState:
			client.Send(ws.StateResponse{Event: ws.EventState, Data: ctrl.State()})
		case ws.ActionPing:
			client.Send(ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			client.Send(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action: " + string(msg.Action)})
		}
	}
}

func (h *WSHandler) handleStart(client *ws.SessionClient, ctrl *proctor.Controller) {
	view, err := ctrl.Start(context.Background())
	if err != nil {
		client.Send(ws.ErrorResponse{Event: ws.EventError, Error: startErrorMessage(err)})
		return
	}
	client.Send(ws.StartedResponse{Event: ws.EventStarted, Data: view})
}

func (h *WSHandler) handleAcquireMedia(client *ws.SessionClient, ctrl *proctor.Controller) {
	err := ctrl.AcquireMedia(context.Background())
	if err == nil {
		client.Notify("info", "Camera and microphone are active.")
		return
	}

	var me *proctor.MediaError
	if errors.As(err, &me) {
		switch me.Kind {
		case proctor.MediaPermissionDenied:
			client.Notify("error", "Camera and microphone access denied. Please allow access to continue with the test.")
		case proctor.MediaDeviceNotFound:
			client.Notify("error", "No camera or microphone found. Please connect the devices and try again.")
		default:
			client.Notify("error", "Could not access camera or microphone. Please check your devices and try again.")
		}
		return
	}
	client.Notify("error", "Could not access camera or microphone. Please check your devices and try again.")
}

func (h *WSHandler) handleSignal(client *ws.SessionClient, ctrl *proctor.Controller, msg *ws.RequestPayload) {
	if msg.Signal == nil {
		return
	}
	sig := proctor.Signal{
		Kind:             proctor.SignalKind(msg.Signal.Kind),
		FullscreenActive: msg.Signal.FullscreenActive,
		DialogFocused:    msg.Signal.DialogFocused,
		Key:              msg.Signal.Key,
		Ctrl:             msg.Signal.Ctrl,
		Alt:              msg.Signal.Alt,
		Shift:            msg.Signal.Shift,
		Meta:             msg.Signal.Meta,
	}
	// Keep the server-side fullscreen flag in sync even when the applicant
	// leaves fullscreen with Esc instead of a command.
	if sig.Kind == proctor.SignalFullscreenChange {
		client.SetFullscreen(sig.FullscreenActive)
	}
	ctrl.HandleSignal(sig)
}

func startErrorMessage(err error) string {
	switch {
	case errors.Is(err, proctor.ErrMediaRequired):
		return "Camera and microphone access are required to start the test."
	case errors.Is(err, proctor.ErrAlreadyStarted):
		return "The test is already in progress."
	case errors.Is(err, proctor.ErrSessionOver):
		return "This test session has already ended."
	case errors.Is(err, service.ErrPaperNotFound):
		return "No test is available for this session."
	default:
		return "Questions could not be loaded. Please try again."
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/proctor"
	"github.com/uniadmit/proctor-gateway/internal/response"
	"github.com/uniadmit/proctor-gateway/internal/service"
)

// SessionHandler serves REST reads over live sessions: reload support for
// the applicant and result retrieval after submission.
type SessionHandler struct {
	registry *service.Registry
	log      zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(registry *service.Registry, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		log:      log.With().Str("component", "session_handler").Logger(),
	}
}

// GetState godoc
// GET /api/v1/sessions/:session_id/state
// Returns the live session snapshot so a reloaded page can resynchronize.
func (h *SessionHandler) GetState(c *gin.Context) {
	ctrl := h.registry.Get(c.Param("session_id"))
	if ctrl == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, ctrl.State())
}

// GetResult godoc
// GET /api/v1/sessions/:session_id/result
// Returns the terminal submission result once the session has submitted.
func (h *SessionHandler) GetResult(c *gin.Context) {
	ctrl := h.registry.Get(c.Param("session_id"))
	if ctrl == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	st := ctrl.State()
	if st.Phase != proctor.PhaseSubmitted || st.Result == nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"result":             st.Result,
		"is_auto_submitted":  st.AutoSubmitted,
		"auto_submit_reason": st.AutoSubmitReason,
	})
}

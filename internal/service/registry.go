package service

import (
	"errors"
	"sync"

	"github.com/uniadmit/proctor-gateway/internal/proctor"
)

// ErrSessionActive means a controller already exists for the session: a
// second device or tab tried to attach while the first is live.
var ErrSessionActive = errors.New("this session is already active on another connection")

// Registry is the in-process index of live session controllers. One
// controller per session ID; a second attach is rejected rather than
// displacing the first.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*proctor.Controller
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*proctor.Controller)}
}

// Attach registers a controller under its session ID.
func (r *Registry) Attach(sessionID string, ctrl *proctor.Controller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[sessionID]; exists {
		return ErrSessionActive
	}
	r.sessions[sessionID] = ctrl
	return nil
}

// Get returns the live controller for a session, or nil.
func (r *Registry) Get(sessionID string) *proctor.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionID]
}

// Detach removes the session if ctrl is still the registered controller.
func (r *Registry) Detach(sessionID string, ctrl *proctor.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[sessionID] == ctrl {
		delete(r.sessions, sessionID)
	}
}

// TeardownAll tears down every live session. Used on server shutdown.
func (r *Registry) TeardownAll() {
	r.mu.Lock()
	ctrls := make([]*proctor.Controller, 0, len(r.sessions))
	for _, c := range r.sessions {
		ctrls = append(ctrls, c)
	}
	r.sessions = make(map[string]*proctor.Controller)
	r.mu.Unlock()

	for _, c := range ctrls {
		c.Teardown()
	}
}

// Count reports the number of live sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

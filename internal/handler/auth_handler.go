package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/uniadmit/proctor-gateway/internal/model"
	"github.com/uniadmit/proctor-gateway/internal/repository"
	"github.com/uniadmit/proctor-gateway/internal/response"
	"github.com/uniadmit/proctor-gateway/internal/service"
	"github.com/uniadmit/proctor-gateway/internal/validator"
)

// AuthHandler handles operator authentication.
type AuthHandler struct {
	authService *service.AuthService
	operators   *repository.OperatorRepository
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, operators *repository.OperatorRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		operators:   operators,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates an operator and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.OperatorLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	op, err := h.operators.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}
	if err := h.authService.CheckPassword(op.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateOperatorToken(c.Request.Context(), op.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Token generation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":    token,
		"operator": op,
	})
}

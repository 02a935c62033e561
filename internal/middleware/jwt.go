package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/uniadmit/proctor-gateway/internal/response"
	"github.com/uniadmit/proctor-gateway/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// RequireApplicantJWT validates an applicant JWT and checks that it is scoped
// to the session named in the route.
func RequireApplicantJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractAndValidateClaims(c, authService)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if claims.TokenType != service.TokenTypeApplicant {
			response.AbortFail(c, http.StatusForbidden, response.ErrApplicantAccessOnly)
			return
		}
		if sid := c.Param("session_id"); sid != "" && sid != claims.SessionID {
			response.AbortFail(c, http.StatusForbidden, response.ErrSessionMismatch)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireOperatorJWT validates an operator JWT from the Authorization header
// and checks the login is still active.
func RequireOperatorJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractAndValidateClaims(c, authService)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if claims.TokenType != service.TokenTypeOperator {
			response.AbortFail(c, http.StatusForbidden, response.ErrOperatorAccessOnly)
			return
		}
		if err := authService.ValidateOperatorLogin(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrLoginInvalidated)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireApplicantWSAuth validates an applicant JWT from the query param
// ?token=... Used for WebSocket upgrade requests, which cannot set headers.
func RequireApplicantWSAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if claims.TokenType != service.TokenTypeApplicant {
			response.AbortFail(c, http.StatusForbidden, response.ErrApplicantAccessOnly)
			return
		}
		if sid := c.Param("session_id"); sid != "" && sid != claims.SessionID {
			response.AbortFail(c, http.StatusForbidden, response.ErrSessionMismatch)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractAndValidateClaims(c *gin.Context, authService *service.AuthService) (*service.Claims, error) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	// Fallback for EventSource (SSE) which cannot send headers
	if tokenStr == "" {
		tokenStr = c.Query("token")
	}

	if tokenStr == "" {
		return nil, fmt.Errorf("authorization header or token query required")
	}

	return authService.ValidateToken(tokenStr)
}

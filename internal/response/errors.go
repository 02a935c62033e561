package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrLoginInvalidated   ErrCode = "LOGIN_INVALIDATED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden           ErrCode = "FORBIDDEN"
	ErrApplicantAccessOnly ErrCode = "APPLICANT_ACCESS_ONLY"
	ErrOperatorAccessOnly  ErrCode = "OPERATOR_ACCESS_ONLY"
	ErrSessionMismatch     ErrCode = "SESSION_MISMATCH"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Session lifecycle ─────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrSessionActive ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionOver   ErrCode = "SESSION_OVER"
	ErrMediaRequired ErrCode = "MEDIA_REQUIRED"
	ErrLoadFailed    ErrCode = "QUESTION_LOAD_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An access token is required."
	case ErrTokenInvalid:
		return "The access token is invalid or has expired."
	case ErrLoginInvalidated:
		return "This login has been invalidated. Please sign in again."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have access to this resource."
	case ErrApplicantAccessOnly:
		return "This endpoint is for test applicants only."
	case ErrOperatorAccessOnly:
		return "This endpoint is for operators only."
	case ErrSessionMismatch:
		return "Your token is not valid for this test session."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "One or more fields failed validation."
	case ErrInvalidPayload:
		return "The request payload could not be parsed."

	// ─── Session lifecycle ─────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."
	case ErrSessionActive:
		return "This test session is already active on another connection."
	case ErrSessionOver:
		return "This test session has already ended."
	case ErrMediaRequired:
		return "Camera and microphone access are required to start the test."
	case ErrLoadFailed:
		return "Questions could not be loaded. Please try again."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please slow down."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal error occurred. Please try again later."
	}
	return "Unknown error."
}

// Package errors provides unified error handling for the auth core.
// It implements structured error types with error codes, HTTP status mapping,
// and retryable detection following RFC 7807.
package errors

import (
	"fmt"
	"net/http"
)

// AuthError is the unified error type for authentication and authorization
// failures. It carries a machine-readable code, an HTTP status suggestion,
// and optional structured details.
type AuthError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message. For credential failures it
	// is always generic; it never reveals whether the account exists.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AuthError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AuthError) WithCause(cause error) *AuthError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AuthError) WithDetail(key string, value any) *AuthError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AuthError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AuthError {
	return &AuthError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors, one per error kind ---

// InvalidCredentials creates the generic credential failure. The message is
// identical for unknown identifiers and wrong secrets.
func InvalidCredentials() *AuthError {
	return &AuthError{
		Code: ErrCodeInvalidCredentials, Message: "Invalid email or password.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// LockedOut creates the lockout failure.
func LockedOut() *AuthError {
	return &AuthError{
		Code: ErrCodeLockedOut, Message: "This account is temporarily locked. Please try again later.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// SessionExpired creates the expired-session failure.
func SessionExpired() *AuthError {
	return &AuthError{
		Code: ErrCodeSessionExpired, Message: "Your session has expired. Please log in again.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// SessionInvalid creates the invalid-session failure.
func SessionInvalid() *AuthError {
	return &AuthError{
		Code: ErrCodeSessionInvalid, Message: "Invalid session. Please log in again.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Unauthenticated creates the missing-principal failure.
func Unauthenticated() *AuthError {
	return &AuthError{
		Code: ErrCodeUnauthenticated, Message: "Authentication required.",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates the policy-rejection failure, recording which policy
// rejected the principal.
func Forbidden(policy string) *AuthError {
	e := &AuthError{
		Code: ErrCodeForbidden, Message: "You don't have permission to perform this action.",
		HTTPStatus: http.StatusForbidden,
	}
	if policy != "" {
		e.WithDetail("policy", policy)
	}
	return e
}

// PolicyNotFound creates the unregistered-policy configuration error.
func PolicyNotFound(policy string) *AuthError {
	return (&AuthError{
		Code: ErrCodePolicyNotFound, Message: fmt.Sprintf("Authorization policy %q is not registered.", policy),
		HTTPStatus: http.StatusInternalServerError,
	}).WithDetail("policy", policy)
}

// ProviderUnavailable creates the unreachable-collaborator failure.
func ProviderUnavailable(provider string, cause error) *AuthError {
	e := &AuthError{
		Code: ErrCodeProviderUnavailable, Message: fmt.Sprintf("The %s provider is temporarily unavailable. Please try again.", provider),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Cause: cause,
	}
	return e.WithDetail("provider", provider)
}

// InvalidInput creates a validation failure.
func InvalidInput(field, reason string) *AuthError {
	e := &AuthError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest,
	}
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation creates a validation failure with a pre-built message.
func Validation(message string) *AuthError {
	return &AuthError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Internal creates an internal failure wrapping its cause.
func Internal(cause error) *AuthError {
	return &AuthError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Credential errors
const (
	// ErrCodeInvalidCredentials indicates the identifier/secret pair did not
	// verify. Deliberately covers both "unknown user" and "wrong password".
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeLockedOut indicates the account is locked out after too many
	// failed attempts.
	ErrCodeLockedOut ErrorCode = "LOCKED_OUT"
)

// Session errors
const (
	// ErrCodeSessionExpired indicates the session token has expired.
	ErrCodeSessionExpired ErrorCode = "SESSION_EXPIRED"
	// ErrCodeSessionInvalid indicates the session token is malformed,
	// fails its integrity check, or has been revoked.
	ErrCodeSessionInvalid ErrorCode = "SESSION_INVALID"
)

// Authorization errors
const (
	// ErrCodeUnauthenticated indicates no authenticated principal is present.
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	// ErrCodeForbidden indicates a named authorization policy rejected the
	// principal.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodePolicyNotFound indicates a required policy name is not
	// registered. This is a configuration error and fatal at startup.
	ErrCodePolicyNotFound ErrorCode = "POLICY_NOT_FOUND"
)

// External collaborator errors
const (
	// ErrCodeProviderUnavailable indicates the identity provider or the user
	// store behind it could not be reached.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
)

// Generic errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeProviderUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

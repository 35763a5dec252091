package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAuthError_New_Success(t *testing.T) {
	err := New(ErrCodeInvalidCredentials, "bad login", http.StatusUnauthorized)
	if err.Code != ErrCodeInvalidCredentials {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidCredentials, err.Code)
	}
	if err.Message != "bad login" {
		t.Errorf("expected message 'bad login', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("INVALID_CREDENTIALS should not be retryable")
	}
}

func TestAuthError_InvalidCredentials_GenericMessage(t *testing.T) {
	// Unknown user and wrong password must be indistinguishable.
	err := InvalidCredentials()
	if err.Message != "Invalid email or password." {
		t.Errorf("unexpected message %q", err.Message)
	}
	if _, ok := err.Details["identifier"]; ok {
		t.Error("credential errors must not leak the identifier")
	}
}

func TestAuthError_LockedOut_Success(t *testing.T) {
	err := LockedOut()
	if err.Code != ErrCodeLockedOut {
		t.Errorf("expected LOCKED_OUT, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", err.HTTPStatus)
	}
}

func TestAuthError_SessionCodes(t *testing.T) {
	if SessionExpired().Code != ErrCodeSessionExpired {
		t.Error("expected SESSION_EXPIRED")
	}
	if SessionInvalid().Code != ErrCodeSessionInvalid {
		t.Error("expected SESSION_INVALID")
	}
	if SessionExpired().HTTPStatus != http.StatusUnauthorized {
		t.Error("expected 401 for expired sessions")
	}
}

func TestAuthError_Forbidden_PolicyDetail(t *testing.T) {
	err := Forbidden("minimum-age")
	if err.HTTPStatus != http.StatusForbidden {
		t.Errorf("expected 403, got %d", err.HTTPStatus)
	}
	if err.Details["policy"] != "minimum-age" {
		t.Errorf("expected policy detail, got %v", err.Details["policy"])
	}
}

func TestAuthError_PolicyNotFound_Success(t *testing.T) {
	err := PolicyNotFound("no-such-policy")
	if err.Code != ErrCodePolicyNotFound {
		t.Errorf("expected POLICY_NOT_FOUND, got %s", err.Code)
	}
	if err.Details["policy"] != "no-such-policy" {
		t.Errorf("expected policy detail, got %v", err.Details["policy"])
	}
}

func TestAuthError_ProviderUnavailable_Retryable(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ProviderUnavailable("google", cause)
	if !err.Retryable {
		t.Error("PROVIDER_UNAVAILABLE should be retryable")
	}
	if err.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", err.HTTPStatus)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to unwrap")
	}
}

func TestAuthError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("store down")
	err := Internal(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAuthError_ToResponse(t *testing.T) {
	err := Forbidden("minimum-age")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeForbidden {
		t.Errorf("expected FORBIDDEN, got %s", resp.Error.Code)
	}
	if resp.Error.Details["policy"] != "minimum-age" {
		t.Errorf("expected policy detail, got %v", resp.Error.Details)
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("login failed: %w", LockedOut())
	if !HasCode(wrapped, ErrCodeLockedOut) {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(wrapped, ErrCodeForbidden) {
		t.Error("unexpected code match")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeLockedOut) {
		t.Error("plain errors must not match")
	}
}

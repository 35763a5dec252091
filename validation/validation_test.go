package validation

import (
	"testing"

	"github.com/adboard/authcore/errors"
)

type loginInput struct {
	Identifier string `json:"identifier" validate:"required,email"`
	Secret     string `json:"secret" validate:"required"`
}

func TestValidate_Success(t *testing.T) {
	if err := Validate(loginInput{Identifier: "admin@test.com", Secret: "P@ssword1"}); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(loginInput{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	authErr, ok := errors.AsAuthError(err)
	if !ok {
		t.Fatalf("expected AuthError, got %T", err)
	}
	if authErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", authErr.Code)
	}
	fields, ok := authErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two field errors, got %v", authErr.Details["fields"])
	}
}

func TestValidate_BadEmail(t *testing.T) {
	err := Validate(loginInput{Identifier: "not-an-email", Secret: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	authErr, _ := errors.AsAuthError(err)
	if authErr == nil || authErr.Message != "identifier: must be a valid email address" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Identifier": "identifier",
		"ReturnURL":  "return_u_r_l",
		"RememberMe": "remember_me",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

package federation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/logger"
)

func newOAuthFixture(t *testing.T, tokenStatus int, userinfoBody string) *OAuthProvider {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing token form: %v", err)
		}
		if r.Form.Get("grant_type") != "authorization_code" {
			t.Errorf("unexpected grant_type %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("code") != "test-code" {
			t.Errorf("unexpected code %q", r.Form.Get("code"))
		}
		w.WriteHeader(tokenStatus)
		w.Write([]byte(`{"access_token":"test-access-token"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-access-token" {
			t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(userinfoBody))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	provider, err := NewOAuthProvider(
		ProviderConfig{
			Name:         "google",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost/auth/google/callback",
		},
		logger.NewDefault("test"),
		WithHTTPClient(ts.Client()),
		WithEndpoints(Endpoints{
			TokenURL:    ts.URL + "/token",
			UserInfoURL: ts.URL + "/userinfo",
		}),
	)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return provider
}

func TestOAuthProvider_Assert(t *testing.T) {
	provider := newOAuthFixture(t, http.StatusOK,
		`{"sub":"google-123","email":"user@test.com","name":"Test User"}`)

	assertion, err := provider.Assert(context.Background(), "test-code")
	if err != nil {
		t.Fatalf("assert: %v", err)
	}
	if assertion.Provider != "google" || assertion.ExternalID != "google-123" {
		t.Errorf("unexpected assertion %+v", assertion)
	}
	if assertion.Email != "user@test.com" || assertion.Name != "Test User" {
		t.Errorf("unexpected assertion %+v", assertion)
	}
}

func TestOAuthProvider_LegacyIDField(t *testing.T) {
	provider := newOAuthFixture(t, http.StatusOK,
		`{"id":"fb-42","email":"user@test.com","name":"Test User"}`)

	assertion, err := provider.Assert(context.Background(), "test-code")
	if err != nil {
		t.Fatalf("assert: %v", err)
	}
	if assertion.ExternalID != "fb-42" {
		t.Errorf("expected id fallback, got %q", assertion.ExternalID)
	}
}

func TestOAuthProvider_TokenEndpointFailure(t *testing.T) {
	provider := newOAuthFixture(t, http.StatusBadGateway, `{}`)

	_, err := provider.Assert(context.Background(), "test-code")
	if !apperrors.HasCode(err, apperrors.ErrCodeProviderUnavailable) {
		t.Errorf("expected PROVIDER_UNAVAILABLE, got %v", err)
	}
	authErr, _ := apperrors.AsAuthError(err)
	if !authErr.Retryable {
		t.Error("expected provider failures to be retryable")
	}
}

func TestOAuthProvider_IncompleteUserInfo(t *testing.T) {
	provider := newOAuthFixture(t, http.StatusOK, `{"email":"user@test.com"}`)

	_, err := provider.Assert(context.Background(), "test-code")
	if !apperrors.HasCode(err, apperrors.ErrCodeProviderUnavailable) {
		t.Errorf("expected PROVIDER_UNAVAILABLE for missing subject, got %v", err)
	}
}

func TestNewOAuthProvider_UnknownProviderNeedsEndpoints(t *testing.T) {
	_, err := NewOAuthProvider(ProviderConfig{Name: "example"}, logger.NewDefault("test"))
	if err == nil {
		t.Error("expected error for unknown provider without endpoints")
	}

	if _, err := NewOAuthProvider(ProviderConfig{Name: "google"}, logger.NewDefault("test")); err != nil {
		t.Errorf("expected google to be well-known, got %v", err)
	}
}

package policy

import (
	"testing"

	"github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/identity"
)

func adultPrincipal() identity.Principal {
	return identity.NewPrincipal([]identity.Claim{
		{Type: identity.ClaimIdentity, Value: "admin@test.com"},
		{Type: identity.ClaimRole, Value: "admin"},
		{Type: MinimumAgeClaim, Value: "true"},
	})
}

func minorPrincipal() identity.Principal {
	return identity.NewPrincipal([]identity.Claim{
		{Type: identity.ClaimIdentity, Value: "kid@test.com"},
		{Type: identity.ClaimRole, Value: "member"},
	})
}

func TestAuthorize_FallbackShortCircuits(t *testing.T) {
	e := NewEngine()
	e.MustRegister(MinimumAgeName, MinimumAge())

	// Empty required set still runs the fallback.
	err := e.Authorize(identity.Principal{})
	if !errors.HasCode(err, errors.ErrCodeUnauthenticated) {
		t.Errorf("expected UNAUTHENTICATED, got %v", err)
	}

	// The fallback runs before named policies, so a claims-free principal
	// is UNAUTHENTICATED, never FORBIDDEN.
	err = e.Authorize(identity.Principal{}, MinimumAgeName)
	if !errors.HasCode(err, errors.ErrCodeUnauthenticated) {
		t.Errorf("expected UNAUTHENTICATED before policy evaluation, got %v", err)
	}
}

func TestAuthorize_AllPoliciesMustPass(t *testing.T) {
	e := NewEngine()
	e.MustRegister(MinimumAgeName, MinimumAge())
	e.MustRegister("is-admin", RequireRole("admin"))

	if err := e.Authorize(adultPrincipal(), MinimumAgeName, "is-admin"); err != nil {
		t.Errorf("expected pass, got %v", err)
	}

	err := e.Authorize(minorPrincipal(), MinimumAgeName, "is-admin")
	if !errors.HasCode(err, errors.ErrCodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	authErr, _ := errors.AsAuthError(err)
	if authErr.Details["policy"] != MinimumAgeName {
		t.Errorf("expected the failing policy name, got %v", authErr.Details["policy"])
	}
}

func TestAuthorize_UnregisteredPolicy(t *testing.T) {
	e := NewEngine()
	// Regardless of principal, an unknown name is POLICY_NOT_FOUND.
	for _, p := range []identity.Principal{adultPrincipal(), minorPrincipal()} {
		err := e.Authorize(p, "no-such-policy")
		if !errors.HasCode(err, errors.ErrCodePolicyNotFound) {
			t.Errorf("expected POLICY_NOT_FOUND, got %v", err)
		}
	}
}

func TestRegister_DuplicateName(t *testing.T) {
	e := NewEngine()
	if err := e.Register(MinimumAgeName, MinimumAge()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := e.Register(MinimumAgeName, MinimumAge()); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := e.Register("", MinimumAge()); err == nil {
		t.Error("expected empty name to fail")
	}
	if err := e.Register("nil-predicate", nil); err == nil {
		t.Error("expected nil predicate to fail")
	}
}

func TestCheckRegistered(t *testing.T) {
	e := NewEngine()
	e.MustRegister(MinimumAgeName, MinimumAge())

	if err := e.CheckRegistered(MinimumAgeName); err != nil {
		t.Errorf("expected registered name to pass, got %v", err)
	}
	err := e.CheckRegistered(MinimumAgeName, "no-such-policy")
	if !errors.HasCode(err, errors.ErrCodePolicyNotFound) {
		t.Errorf("expected POLICY_NOT_FOUND, got %v", err)
	}
}

func TestWithFallback(t *testing.T) {
	denyAll := func(identity.Principal) bool { return false }
	e := NewEngine(WithFallback(denyAll))
	err := e.Authorize(adultPrincipal())
	if !errors.HasCode(err, errors.ErrCodeUnauthenticated) {
		t.Errorf("expected custom fallback to apply, got %v", err)
	}
}

func TestRequireRole_Wildcards(t *testing.T) {
	p := identity.NewPrincipal([]identity.Claim{
		{Type: identity.ClaimIdentity, Value: "mod@test.com"},
		{Type: identity.ClaimRole, Value: "moderator:listings"},
	})

	tests := []struct {
		pattern string
		want    bool
	}{
		{"moderator:listings", true},
		{"moderator:*", true},
		{"*:listings", true},
		{"*:*", true},
		{"moderator:users", false},
		{"admin", false},
	}
	for _, tt := range tests {
		if got := RequireRole(tt.pattern)(p); got != tt.want {
			t.Errorf("RequireRole(%q) = %t, want %t", tt.pattern, got, tt.want)
		}
	}
}

func TestRequireAnyRole(t *testing.T) {
	p := minorPrincipal()
	if !RequireAnyRole("admin", "member")(p) {
		t.Error("expected member to match")
	}
	if RequireAnyRole("admin", "moderator")(p) {
		t.Error("expected no match")
	}
}

func TestMatchPattern_PlainStrings(t *testing.T) {
	if !MatchPattern("*", "anything") {
		t.Error("universal wildcard should match")
	}
	if MatchPattern("admin", "administrator") {
		t.Error("plain strings must match exactly")
	}
	if !MatchPattern("listing:*", "listing:edit") {
		t.Error("scoped wildcard should match")
	}
	if MatchPattern("listing:*", "plain") {
		t.Error("mixed formats must not match")
	}
}

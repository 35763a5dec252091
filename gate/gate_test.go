package gate

import (
	"testing"
	"time"

	"github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/policy"
	"github.com/adboard/authcore/session"
)

type fixture struct {
	gate   *Gate
	issuer *session.Issuer
	clock  *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	clock := &now

	issuer, err := session.NewIssuer(
		session.Config{Secret: "test-secret"},
		logger.NewDefault("test"),
		session.WithClock(func() time.Time { return *clock }),
	)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	engine := policy.NewEngine()
	engine.MustRegister(policy.MinimumAgeName, policy.MinimumAge())
	engine.MustRegister("is-admin", policy.RequireRole("admin"))

	return &fixture{gate: New(issuer, engine), issuer: issuer, clock: clock}
}

func (f *fixture) issue(t *testing.T, claims ...identity.Claim) string {
	t.Helper()
	token, err := f.issuer.Issue(identity.NewPrincipal(claims), false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token.Value
}

func adultClaims() []identity.Claim {
	return []identity.Claim{
		{Type: identity.ClaimIdentity, Value: "admin@test.com"},
		{Type: identity.ClaimRole, Value: "admin"},
		{Type: policy.MinimumAgeClaim, Value: "true"},
	}
}

func TestHandle_NoToken_Challenges(t *testing.T) {
	f := newFixture(t)
	if d := f.gate.Handle(""); d.Outcome != OutcomeChallenge {
		t.Errorf("expected challenge, got %s", d.Outcome)
	}
}

func TestHandle_ValidSession_Allows(t *testing.T) {
	f := newFixture(t)
	token := f.issue(t, adultClaims()...)

	d := f.gate.Handle(token, policy.MinimumAgeName, "is-admin")
	if d.Outcome != OutcomeAllow {
		t.Fatalf("expected allow, got %s (%v)", d.Outcome, d.Err)
	}
	if v, _ := d.Principal.Value(identity.ClaimIdentity); v != "admin@test.com" {
		t.Errorf("unexpected principal identity %q", v)
	}
}

func TestHandle_ExpiredSession_Challenges(t *testing.T) {
	f := newFixture(t)
	token := f.issue(t, adultClaims()...)

	*f.clock = f.clock.Add(2 * time.Hour)
	if d := f.gate.Handle(token); d.Outcome != OutcomeChallenge {
		t.Errorf("expected challenge for expired session, got %s", d.Outcome)
	}
}

func TestHandle_MalformedToken_Challenges(t *testing.T) {
	f := newFixture(t)
	if d := f.gate.Handle("garbage"); d.Outcome != OutcomeChallenge {
		t.Errorf("expected challenge for malformed token, got %s", d.Outcome)
	}
}

func TestHandle_RevokedToken_Challenges(t *testing.T) {
	f := newFixture(t)
	token := f.issue(t, adultClaims()...)
	f.issuer.Revoke(token)
	if d := f.gate.Handle(token); d.Outcome != OutcomeChallenge {
		t.Errorf("expected challenge for revoked token, got %s", d.Outcome)
	}
}

func TestHandle_UnauthenticatedPrincipal_Challenges(t *testing.T) {
	f := newFixture(t)
	// A session carrying no identity claim fails the fallback rule.
	token := f.issue(t, identity.Claim{Type: identity.ClaimRole, Value: "admin"})
	if d := f.gate.Handle(token); d.Outcome != OutcomeChallenge {
		t.Errorf("expected challenge for unauthenticated principal, got %s", d.Outcome)
	}
}

func TestHandle_PolicyRejection_Denies(t *testing.T) {
	f := newFixture(t)
	token := f.issue(t,
		identity.Claim{Type: identity.ClaimIdentity, Value: "kid@test.com"},
		identity.Claim{Type: identity.ClaimRole, Value: "member"},
	)

	d := f.gate.Handle(token, policy.MinimumAgeName)
	if d.Outcome != OutcomeDeny {
		t.Fatalf("expected deny, got %s", d.Outcome)
	}
	if d.Err == nil || d.Err.Code != errors.ErrCodeForbidden {
		t.Errorf("expected FORBIDDEN, got %v", d.Err)
	}
	if d.Err.Details["policy"] != policy.MinimumAgeName {
		t.Errorf("expected the failing policy name, got %v", d.Err.Details)
	}
}

func TestHandle_UnregisteredPolicy_Denies(t *testing.T) {
	f := newFixture(t)
	token := f.issue(t, adultClaims()...)

	d := f.gate.Handle(token, "no-such-policy")
	if d.Outcome != OutcomeDeny {
		t.Fatalf("expected deny, got %s", d.Outcome)
	}
	if d.Err.Code != errors.ErrCodePolicyNotFound {
		t.Errorf("expected POLICY_NOT_FOUND, got %s", d.Err.Code)
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeAllow:     "allow",
		OutcomeChallenge: "challenge",
		OutcomeDeny:      "deny",
		Outcome(99):      "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", o, got, want)
		}
	}
}

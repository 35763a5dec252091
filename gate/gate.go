// Package gate is the per-request entry point of the auth core. It resolves
// the current principal from the session token and turns the session and
// policy outcomes into a single explicit decision value, with no ambient
// request-scoped magic.
package gate

import (
	"github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/policy"
	"github.com/adboard/authcore/session"
)

// Outcome enumerates the gate's possible decisions.
type Outcome int

const (
	// OutcomeAllow admits the request with an authenticated principal.
	OutcomeAllow Outcome = iota
	// OutcomeChallenge redirects the caller to login.
	OutcomeChallenge
	// OutcomeDeny rejects the request with an authorization error.
	OutcomeDeny
)

// String implements fmt.Stringer for logs and metrics labels.
func (o Outcome) String() string {
	switch o {
	case OutcomeAllow:
		return "allow"
	case OutcomeChallenge:
		return "challenge"
	case OutcomeDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// Decision is the result of gating one request. Principal is only set for
// OutcomeAllow; Err is only set for OutcomeDeny.
type Decision struct {
	Outcome   Outcome
	Principal identity.Principal
	Err       *errors.AuthError
}

// Allow builds an admit decision.
func Allow(p identity.Principal) Decision {
	return Decision{Outcome: OutcomeAllow, Principal: p}
}

// Challenge builds a login-challenge decision.
func Challenge() Decision {
	return Decision{Outcome: OutcomeChallenge}
}

// Deny builds a rejection decision.
func Deny(err *errors.AuthError) Decision {
	return Decision{Outcome: OutcomeDeny, Err: err}
}

// Gate evaluates session tokens against the policy engine.
type Gate struct {
	sessions *session.Issuer
	policies *policy.Engine
}

// New creates a Gate.
func New(sessions *session.Issuer, policies *policy.Engine) *Gate {
	return &Gate{sessions: sessions, policies: policies}
}

// Handle gates one request. token is the raw session token, empty when the
// request carried none; required names the policies the route demands.
//
// Missing, expired, or invalid sessions challenge for login. An
// unauthenticated principal also challenges; re-authenticating can fix it.
// A policy rejection denies; logging in again would not help.
func (g *Gate) Handle(token string, required ...string) Decision {
	if token == "" {
		return Challenge()
	}

	principal, err := g.sessions.Resolve(token)
	if err != nil {
		switch {
		case errors.HasCode(err, errors.ErrCodeSessionExpired),
			errors.HasCode(err, errors.ErrCodeSessionInvalid):
			return Challenge()
		default:
			authErr, ok := errors.AsAuthError(err)
			if !ok {
				authErr = errors.Internal(err)
			}
			return Deny(authErr)
		}
	}

	if err := g.policies.Authorize(principal, required...); err != nil {
		if errors.HasCode(err, errors.ErrCodeUnauthenticated) {
			return Challenge()
		}
		authErr, ok := errors.AsAuthError(err)
		if !ok {
			authErr = errors.Internal(err)
		}
		return Deny(authErr)
	}

	return Allow(principal)
}

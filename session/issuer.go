// Package session issues, resolves, and revokes session tokens.
//
// Tokens are self-contained signed JWTs embedding the principal's claim
// sequence, so resolving a token recovers the exact claim set built at
// issuance (same claims, same order) without a store round trip.
// Revocation is handled by a deny-list consulted on every resolve.
package session

import (
	stderrors "errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/logger"
)

// Token is an issued session credential.
type Token struct {
	// Value is the signed, opaque-to-clients token string.
	Value string

	// IssuedAt is when the token was created.
	IssuedAt time.Time

	// ExpiresAt is when the token stops resolving. Always strictly after
	// IssuedAt.
	ExpiresAt time.Time

	// Persistent reports whether the token uses the remember-me lifetime.
	Persistent bool
}

// tokenClaims is the JWT payload: registered claims plus the principal's
// ordered claim sequence.
type tokenClaims struct {
	gojwt.RegisteredClaims
	Claims     []identity.Claim `json:"claims"`
	Persistent bool             `json:"persistent,omitempty"`
}

// Issuer issues and resolves session tokens.
type Issuer struct {
	cfg    Config
	denied *denylist
	log    *logger.Logger
	now    func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer creates an Issuer from configuration.
func NewIssuer(cfg Config, log *logger.Logger, opts ...IssuerOption) (*Issuer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	i := &Issuer{
		cfg:    cfg,
		denied: newDenylist(),
		log:    log.WithComponent("session"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue creates a signed token for the principal. rememberMe selects the
// long remember-me lifetime instead of the default session lifetime.
func (i *Issuer) Issue(principal identity.Principal, rememberMe bool) (Token, error) {
	now := i.now()
	ttl := i.cfg.DefaultTTL
	if rememberMe {
		ttl = i.cfg.RememberMeTTL
	}
	expiresAt := now.Add(ttl)

	claims := tokenClaims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    i.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
		Claims:     principal.Claims(),
		Persistent: rememberMe,
	}

	signed, err := gojwt.NewWithClaims(i.cfg.signingMethod(), claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return Token{}, errors.Internal(fmt.Errorf("session: sign token: %w", err))
	}

	return Token{
		Value:      signed,
		IssuedAt:   now,
		ExpiresAt:  expiresAt,
		Persistent: rememberMe,
	}, nil
}

// Resolve verifies a token and reconstructs its principal. Expired tokens
// always fail with SESSION_EXPIRED; malformed, forged, or revoked tokens
// fail with SESSION_INVALID.
func (i *Issuer) Resolve(value string) (identity.Principal, error) {
	claims, err := i.parse(value)
	if err != nil {
		if stderrors.Is(err, gojwt.ErrTokenExpired) {
			return identity.Principal{}, errors.SessionExpired()
		}
		return identity.Principal{}, errors.SessionInvalid().WithCause(err)
	}

	if i.denied.contains(claims.ID, i.now()) {
		return identity.Principal{}, errors.SessionInvalid()
	}

	return identity.NewPrincipal(claims.Claims), nil
}

// Revoke invalidates a token. It is idempotent: revoking an already-revoked,
// expired, or unknown token is not an error.
func (i *Issuer) Revoke(value string) {
	claims, err := i.parse(value)
	if err != nil {
		// Expired or malformed tokens never resolve, so there is nothing
		// to deny.
		return
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	i.denied.add(claims.ID, expiresAt, i.now())
	i.log.Debug("session revoked", map[string]interface{}{
		logger.FieldSessionID: claims.ID,
	})
}

// parse verifies the signature and standard time claims.
func (i *Issuer) parse(value string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := gojwt.ParseWithClaims(value, claims, i.keyFunc,
		gojwt.WithValidMethods([]string{i.cfg.signingMethod().Alg()}),
		gojwt.WithIssuer(i.cfg.Issuer),
		gojwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, stderrors.New("session: invalid token")
	}
	return claims, nil
}

func (i *Issuer) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != i.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("session: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(i.cfg.Secret), nil
}

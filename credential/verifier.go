// Package credential verifies local email/password credentials against the
// user-store collaborator and enforces the failed-attempt lockout policy.
package credential

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/mail"
	"github.com/adboard/authcore/password"
	"github.com/adboard/authcore/store"
	"github.com/adboard/authcore/validation"
)

// credentialInput is validated before any store access.
type credentialInput struct {
	Identifier string `json:"identifier" validate:"required,email"`
	Secret     string `json:"secret" validate:"required"`
}

// Verifier validates local credentials. All mutations of
// FailedAttempts/LockoutUntil go through the store's atomic update path, so
// concurrent failed attempts for the same identifier never under-count.
type Verifier struct {
	users  store.Store
	hasher password.Hasher
	mailer mail.ConfirmationSender
	cfg    LockoutConfig
	log    *logger.Logger
	now    func() time.Time
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// WithConfirmationSender sets the collaborator used to re-send confirmation
// emails when an unconfirmed account presents valid credentials.
func WithConfirmationSender(sender mail.ConfirmationSender) Option {
	return func(v *Verifier) { v.mailer = sender }
}

// NewVerifier creates a Verifier. cfg is defaulted and validated here;
// invalid lockout configuration is a programming error and panics, matching
// how the engine treats unregistered policies at startup.
func NewVerifier(users store.Store, hasher password.Hasher, cfg LockoutConfig, log *logger.Logger, opts ...Option) *Verifier {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		panic("credential: " + err.Error())
	}
	v := &Verifier{
		users:  users,
		hasher: hasher,
		cfg:    cfg,
		log:    log.WithComponent("credential"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks an identifier/secret pair. On success it resets the failed
// attempt counter and returns the user snapshot. Failures never reveal
// whether the identifier exists.
func (v *Verifier) Verify(ctx context.Context, identifier, secret string) (*identity.User, error) {
	if err := validation.Validate(credentialInput{Identifier: identifier, Secret: secret}); err != nil {
		return nil, errors.InvalidCredentials().WithCause(err)
	}

	user, err := v.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return nil, errors.InvalidCredentials()
		}
		return nil, errors.Internal(err)
	}

	now := v.now()
	if user.LockedOut(now) {
		// No secret comparison while locked out.
		return nil, errors.LockedOut()
	}

	if err := v.hasher.Verify(secret, user.PasswordHash); err != nil {
		return nil, v.recordFailure(ctx, user.ID, now)
	}

	if v.cfg.ConfirmationRequired() && !user.Confirmed {
		v.resendConfirmation(ctx, user.Identifier)
		return nil, errors.InvalidCredentials()
	}

	updated, err := v.users.Update(ctx, user.ID, func(u *identity.User) error {
		u.FailedAttempts = 0
		u.LockoutUntil = nil
		return nil
	})
	if err != nil {
		return nil, errors.Internal(err)
	}
	return updated, nil
}

// recordFailure increments the failure counter atomically and converts the
// result into the caller-facing error. Crossing the threshold starts a
// lockout and resets the counter for the next window.
func (v *Verifier) recordFailure(ctx context.Context, userID string, now time.Time) error {
	lockedOut := false
	_, err := v.users.Update(ctx, userID, func(u *identity.User) error {
		u.FailedAttempts++
		if u.FailedAttempts >= v.cfg.MaxFailedAttempts {
			until := now.Add(v.cfg.LockoutDuration)
			u.LockoutUntil = &until
			u.FailedAttempts = 0
			lockedOut = true
		}
		return nil
	})
	if err != nil {
		return errors.Internal(err)
	}
	if lockedOut {
		v.log.Warn("account locked out", map[string]interface{}{
			"user_id": userID,
			"until":   now.Add(v.cfg.LockoutDuration).Format(time.RFC3339),
		})
		return errors.LockedOut()
	}
	return errors.InvalidCredentials()
}

// resendConfirmation fires the confirmation email. Delivery failures are
// logged, never surfaced to the caller.
func (v *Verifier) resendConfirmation(ctx context.Context, email string) {
	if v.mailer == nil {
		return
	}
	token, err := password.GenerateToken(32)
	if err != nil {
		v.log.Error("confirmation token generation failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := v.mailer.SendConfirmation(ctx, email, token); err != nil {
		v.log.Error("confirmation email failed", map[string]interface{}{"error": err.Error()})
	}
}

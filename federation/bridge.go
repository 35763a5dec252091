package federation

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/store"
	"github.com/adboard/authcore/validation"
)

// Bridge resolves external assertions to local user records: an existing
// link wins, then an email match (the link is added), and finally a fresh
// record is created. External providers are trusted for email ownership, so
// created and email-linked accounts are marked confirmed.
type Bridge struct {
	users store.Store
	log   *logger.Logger
}

// NewBridge creates a Bridge backed by the given user store.
func NewBridge(users store.Store, log *logger.Logger) *Bridge {
	return &Bridge{users: users, log: log.WithComponent("federation")}
}

// Resolve maps a verified assertion to a local user record. Store
// reachability failures surface as PROVIDER_UNAVAILABLE; the bridge never
// retries; that decision belongs to the caller.
func (b *Bridge) Resolve(ctx context.Context, assertion Assertion) (*identity.User, error) {
	if err := validation.Validate(assertion); err != nil {
		return nil, err
	}

	user, err := b.users.FindByExternalID(ctx, assertion.Provider, assertion.ExternalID)
	switch {
	case err == nil:
		return user, nil
	case !stderrors.Is(err, store.ErrNotFound):
		return nil, errors.ProviderUnavailable(assertion.Provider, err)
	}

	// An unverified email never links to an existing account; that would
	// hand the account to whoever registered the address at the provider.
	if assertion.EmailVerified {
		user, err = b.users.FindByIdentifier(ctx, assertion.Email)
		switch {
		case err == nil:
			return b.link(ctx, user, assertion)
		case !stderrors.Is(err, store.ErrNotFound):
			return nil, errors.ProviderUnavailable(assertion.Provider, err)
		}
	}

	return b.create(ctx, assertion)
}

// link attaches the external identity to an existing local account.
func (b *Bridge) link(ctx context.Context, user *identity.User, assertion Assertion) (*identity.User, error) {
	updated, err := b.users.Update(ctx, user.ID, func(u *identity.User) error {
		if !u.LinkedTo(assertion.Provider, assertion.ExternalID) {
			u.ExternalLinks = append(u.ExternalLinks, identity.ExternalLink{
				Provider:   assertion.Provider,
				ExternalID: assertion.ExternalID,
			})
		}
		// The provider attested ownership of this email.
		u.Confirmed = true
		return nil
	})
	if err != nil {
		return nil, errors.ProviderUnavailable(assertion.Provider, err)
	}
	b.log.Info("external identity linked", map[string]interface{}{
		"provider": assertion.Provider,
		"user_id":  updated.ID,
	})
	return updated, nil
}

// create provisions a fresh local account for a first-time external sign-in.
func (b *Bridge) create(ctx context.Context, assertion Assertion) (*identity.User, error) {
	name := assertion.Name
	if name == "" {
		name = displayNameFromEmail(assertion.Email)
	}
	created, err := b.users.Create(ctx, &identity.User{
		Identifier:  assertion.Email,
		DisplayName: name,
		Roles:       []string{"member"},
		Confirmed:   assertion.EmailVerified,
		ExternalLinks: []identity.ExternalLink{
			{Provider: assertion.Provider, ExternalID: assertion.ExternalID},
		},
	})
	if err != nil {
		return nil, errors.ProviderUnavailable(assertion.Provider, err)
	}
	b.log.Info("user provisioned from external identity", map[string]interface{}{
		"provider": assertion.Provider,
		"user_id":  created.ID,
	})
	return created, nil
}

func displayNameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

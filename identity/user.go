package identity

import "time"

// ExternalLink ties a user record to an identity at an external provider.
type ExternalLink struct {
	Provider   string `json:"provider"`
	ExternalID string `json:"external_id"`
}

// User is the record owned by the user-store collaborator. The auth core
// reads it and only ever mutates FailedAttempts and LockoutUntil (through
// the store's atomic update path).
type User struct {
	// ID is an opaque identifier assigned by the store.
	ID string `json:"id"`

	// Identifier is the login identifier, an email address.
	Identifier string `json:"identifier"`

	// DisplayName is the human-readable name used for the name claim.
	DisplayName string `json:"display_name"`

	// PasswordHash is the stored secret hash. Empty for users that only
	// sign in through an external provider.
	PasswordHash string `json:"-"`

	// Roles are the role names granted to the user, in stored order.
	Roles []string `json:"roles"`

	// Attributes are custom attribute values keyed by claim type.
	Attributes map[string]string `json:"attributes,omitempty"`

	// FailedAttempts counts consecutive failed credential verifications.
	FailedAttempts int `json:"failed_attempts"`

	// LockoutUntil, when set and in the future, makes every credential
	// verification fail regardless of secret correctness.
	LockoutUntil *time.Time `json:"lockout_until,omitempty"`

	// Confirmed reports whether the account's email has been confirmed.
	Confirmed bool `json:"confirmed"`

	// ExternalLinks are the external provider identities linked to this user.
	ExternalLinks []ExternalLink `json:"external_links,omitempty"`
}

// LockedOut reports whether the user is locked out at the given instant.
func (u *User) LockedOut(now time.Time) bool {
	return u.LockoutUntil != nil && now.Before(*u.LockoutUntil)
}

// LinkedTo reports whether the user is linked to the given external identity.
func (u *User) LinkedTo(provider, externalID string) bool {
	for _, l := range u.ExternalLinks {
		if l.Provider == provider && l.ExternalID == externalID {
			return true
		}
	}
	return false
}

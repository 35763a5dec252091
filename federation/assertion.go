// Package federation maps verified assertions from external identity
// providers onto local user records. The provider handshake (OAuth2/OIDC
// redirect, code exchange, signature verification) is a collaborator
// concern; by the time an Assertion reaches this package it is trusted.
package federation

// Assertion is a verified statement from an external identity provider.
type Assertion struct {
	// Provider is the provider identifier (e.g., "google", "facebook").
	Provider string `json:"provider" validate:"required"`

	// ExternalID is the provider's unique identifier for the user.
	ExternalID string `json:"external_id" validate:"required"`

	// Email is the user's email address as attested by the provider.
	Email string `json:"email" validate:"required,email"`

	// EmailVerified reports whether the provider verified ownership of the
	// address. Only verified emails may link to existing local accounts.
	EmailVerified bool `json:"email_verified"`

	// Name is the user's display name, if the provider supplied one.
	Name string `json:"name,omitempty"`
}

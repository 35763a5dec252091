// Package store defines the user-store collaborator contract. The auth core
// never owns user persistence; it talks to an implementation of Store and
// treats records as snapshots.
//
// Implementations must make Update atomic per record: the credential
// verifier mutates FailedAttempts/LockoutUntil through Update, and
// concurrent failed attempts for the same identifier must not under-count
// lockouts.
package store

import (
	"context"
	"errors"

	"github.com/adboard/authcore/identity"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("store: user not found")

// Store is the user-store collaborator.
type Store interface {
	// FindByIdentifier returns the user with the given login identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*identity.User, error)

	// FindByExternalID returns the user linked to the given external identity.
	FindByExternalID(ctx context.Context, provider, externalID string) (*identity.User, error)

	// Create persists a new record and returns it with its assigned ID.
	Create(ctx context.Context, user *identity.User) (*identity.User, error)

	// Save persists changes to an existing record.
	Save(ctx context.Context, user *identity.User) error

	// Update applies fn to the record with the given ID under the store's
	// per-record synchronization and persists the result. fn returning an
	// error aborts the update.
	Update(ctx context.Context, id string, fn func(*identity.User) error) (*identity.User, error)
}

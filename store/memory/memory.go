// Package memory provides an in-memory store.Store. It backs the sample
// server and the test suites; production deployments plug in a persistent
// implementation of the same interface.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/store"
)

// Store is a concurrency-safe in-memory user store. A single mutex guards
// the maps; Update runs its mutation function under that mutex, which gives
// the per-record atomicity the credential verifier relies on.
type Store struct {
	mu       sync.RWMutex
	byID     map[string]*identity.User
	byLogin  map[string]string // lowercased identifier -> id
	byExtern map[string]string // provider "\x00" externalID -> id
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		byID:     make(map[string]*identity.User),
		byLogin:  make(map[string]string),
		byExtern: make(map[string]string),
	}
}

func externKey(provider, externalID string) string {
	return provider + "\x00" + externalID
}

// clone returns a snapshot so callers never alias the stored record.
func clone(u *identity.User) *identity.User {
	cp := *u
	cp.Roles = append([]string(nil), u.Roles...)
	cp.ExternalLinks = append([]identity.ExternalLink(nil), u.ExternalLinks...)
	if u.Attributes != nil {
		cp.Attributes = make(map[string]string, len(u.Attributes))
		for k, v := range u.Attributes {
			cp.Attributes[k] = v
		}
	}
	if u.LockoutUntil != nil {
		t := *u.LockoutUntil
		cp.LockoutUntil = &t
	}
	return &cp
}

// FindByIdentifier implements store.Store.
func (s *Store) FindByIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byLogin[strings.ToLower(identifier)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(s.byID[id]), nil
}

// FindByExternalID implements store.Store.
func (s *Store) FindByExternalID(ctx context.Context, provider, externalID string) (*identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byExtern[externKey(provider, externalID)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clone(s.byID[id]), nil
}

// Create implements store.Store. An empty ID is assigned a fresh UUID.
func (s *Store) Create(ctx context.Context, user *identity.User) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	login := strings.ToLower(user.Identifier)
	if _, exists := s.byLogin[login]; exists {
		return nil, fmt.Errorf("memory: identifier %q already exists", user.Identifier)
	}

	cp := clone(user)
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	s.byID[cp.ID] = cp
	s.byLogin[login] = cp.ID
	for _, l := range cp.ExternalLinks {
		s.byExtern[externKey(l.Provider, l.ExternalID)] = cp.ID
	}
	return clone(cp), nil
}

// Save implements store.Store.
func (s *Store) Save(ctx context.Context, user *identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(user)
}

func (s *Store) saveLocked(user *identity.User) error {
	old, ok := s.byID[user.ID]
	if !ok {
		return store.ErrNotFound
	}

	delete(s.byLogin, strings.ToLower(old.Identifier))
	for _, l := range old.ExternalLinks {
		delete(s.byExtern, externKey(l.Provider, l.ExternalID))
	}

	cp := clone(user)
	s.byID[cp.ID] = cp
	s.byLogin[strings.ToLower(cp.Identifier)] = cp.ID
	for _, l := range cp.ExternalLinks {
		s.byExtern[externKey(l.Provider, l.ExternalID)] = cp.ID
	}
	return nil
}

// Update implements store.Store. The mutation runs under the store mutex so
// concurrent updates to the same record serialize.
func (s *Store) Update(ctx context.Context, id string, fn func(*identity.User) error) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	cp := clone(current)
	if err := fn(cp); err != nil {
		return nil, err
	}
	if err := s.saveLocked(cp); err != nil {
		return nil, err
	}
	return clone(cp), nil
}

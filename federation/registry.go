package federation

import (
	"context"
	"fmt"
	"sync"
)

// Provider is the external identity provider collaborator. Implementations
// own the full handshake (redirect, code exchange, token verification) and
// hand back a verified Assertion.
type Provider interface {
	// Name returns the provider identifier (e.g., "google").
	Name() string

	// Assert completes the provider side of a sign-in for the given
	// authorization code and returns a verified assertion.
	Assert(ctx context.Context, code string) (Assertion, error)
}

// Registry is a thread-safe registry of named Providers. It is populated at
// startup and read-only afterwards; the mutex exists for safety, not for a
// supported concurrent-write pattern.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a named Provider. Registering a duplicate name is a
// configuration error.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[p.Name()]; exists {
		return fmt.Errorf("federation: provider %q already registered", p.Name())
	}
	r.providers[p.Name()] = p
	return nil
}

// Get returns the Provider registered under the given name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Names returns all registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

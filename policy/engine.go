// Package policy implements the authorization policy engine: a registry of
// named predicates over principals plus a fallback rule that gates every
// evaluation.
//
// The registry is populated during startup and read-only afterwards.
// Required policy names are validated with CheckRegistered before the
// server accepts traffic; an unknown name is a configuration error, not a
// per-request condition.
package policy

import (
	"fmt"

	"github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/identity"
)

// Predicate decides whether a principal satisfies a policy. Predicates are
// pure functions of the principal's claims.
type Predicate func(identity.Principal) bool

// Policy pairs a unique name with its predicate.
type Policy struct {
	Name      string
	Predicate Predicate
}

// Engine evaluates named policies and the fallback rule.
type Engine struct {
	policies map[string]Predicate
	fallback Predicate
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFallback replaces the default fallback predicate ("principal carries
// at least one identity claim").
func WithFallback(p Predicate) EngineOption {
	return func(e *Engine) { e.fallback = p }
}

// NewEngine creates an Engine with the default fallback rule.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		policies: make(map[string]Predicate),
		fallback: identity.Principal.IsAuthenticated,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds a named policy. Policy names are unique; registering a
// duplicate is a configuration error.
func (e *Engine) Register(name string, p Predicate) error {
	if name == "" {
		return fmt.Errorf("policy: name is required")
	}
	if p == nil {
		return fmt.Errorf("policy: %q has no predicate", name)
	}
	if _, exists := e.policies[name]; exists {
		return fmt.Errorf("policy: %q already registered", name)
	}
	e.policies[name] = p
	return nil
}

// MustRegister is Register that panics on error. For startup wiring where a
// duplicate name is a programming mistake.
func (e *Engine) MustRegister(name string, p Predicate) {
	if err := e.Register(name, p); err != nil {
		panic(err)
	}
}

// CheckRegistered verifies that every name is a registered policy. Called
// during startup validation; a POLICY_NOT_FOUND here must abort boot.
func (e *Engine) CheckRegistered(names ...string) error {
	for _, name := range names {
		if _, ok := e.policies[name]; !ok {
			return errors.PolicyNotFound(name)
		}
	}
	return nil
}

// Names returns all registered policy names.
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.policies))
	for name := range e.policies {
		names = append(names, name)
	}
	return names
}

// Authorize evaluates the fallback rule and then every required policy
// against the principal. The fallback failing short-circuits with
// UNAUTHENTICATED; all required policies must pass, and the first predicate
// returning false fails with FORBIDDEN naming the policy. An unregistered
// required name returns POLICY_NOT_FOUND; startup validation should have
// caught it, so hitting this at request time means misconfiguration.
func (e *Engine) Authorize(principal identity.Principal, required ...string) error {
	if !e.fallback(principal) {
		return errors.Unauthenticated()
	}
	for _, name := range required {
		predicate, ok := e.policies[name]
		if !ok {
			return errors.PolicyNotFound(name)
		}
		if !predicate(principal) {
			return errors.Forbidden(name)
		}
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/adboard/authcore/credential"
	"github.com/adboard/authcore/federation"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/observability"
	"github.com/adboard/authcore/password"
	"github.com/adboard/authcore/server"
	"github.com/adboard/authcore/session"
)

// Config is the root configuration of the auth service. It is built once at
// startup, validated, and passed explicitly, never mutated after init.
type Config struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`

	Logging       logger.Config            `mapstructure:"logging"`
	Server        server.Config            `mapstructure:"server"`
	Password      password.Config          `mapstructure:"password"`
	Lockout       credential.LockoutConfig `mapstructure:"lockout"`
	Session       session.Config           `mapstructure:"session"`
	Federation    federation.Config        `mapstructure:"federation"`
	Observability observability.Config     `mapstructure:"observability"`
	Policies      PoliciesConfig           `mapstructure:"policies"`

	// Users seeds the in-memory store at startup. Secrets are plain text in
	// config and hashed before the store ever sees them.
	Users []SeedUser `mapstructure:"users"`
}

// PoliciesConfig declares the named authorization policies registered at
// startup and the policies each protected route requires.
type PoliciesConfig struct {
	// Roles maps policy names to role patterns, e.g. is-admin: admin.
	Roles []RolePolicy `mapstructure:"roles"`

	// Routes maps protected paths to the policy names they require. Every
	// referenced name is checked against the registry at startup; an unknown
	// name aborts boot.
	Routes []RoutePolicy `mapstructure:"routes"`
}

// RolePolicy registers a role-membership policy under a name.
type RolePolicy struct {
	Name string `mapstructure:"name"`
	Role string `mapstructure:"role"`
}

// RoutePolicy guards a path with a set of named policies.
type RoutePolicy struct {
	Path     string   `mapstructure:"path"`
	Policies []string `mapstructure:"policies"`
}

// SeedUser is an account created in the store at startup.
type SeedUser struct {
	Identifier  string            `mapstructure:"identifier"`
	Secret      string            `mapstructure:"secret"`
	DisplayName string            `mapstructure:"display_name"`
	Roles       []string          `mapstructure:"roles"`
	Attributes  map[string]string `mapstructure:"attributes"`
	Confirmed   bool              `mapstructure:"confirmed"`
}

// ApplyDefaults applies defaults to the root and every sub-config.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "authd"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Lockout.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Federation.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates the root and every sub-config.
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}

	checks := []struct {
		name string
		err  error
	}{
		{"logging", c.Logging.Validate()},
		{"server", c.Server.Validate()},
		{"password", c.Password.Validate()},
		{"lockout", c.Lockout.Validate()},
		{"session", c.Session.Validate()},
		{"federation", c.Federation.Validate()},
		{"observability", c.Observability.Validate()},
	}
	for _, check := range checks {
		if check.err != nil {
			return fmt.Errorf("%s: %w", check.name, check.err)
		}
	}

	for i, rp := range c.Policies.Roles {
		if rp.Name == "" || rp.Role == "" {
			return fmt.Errorf("policies.roles[%d]: name and role are required", i)
		}
	}
	for i, rt := range c.Policies.Routes {
		if rt.Path == "" {
			return fmt.Errorf("policies.routes[%d]: path is required", i)
		}
	}
	for i, u := range c.Users {
		if u.Identifier == "" || u.Secret == "" {
			return fmt.Errorf("users[%d]: identifier and secret are required", i)
		}
	}
	return nil
}

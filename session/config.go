package session

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines supported session token signing algorithms.
// Session tokens are symmetric; the issuer is the only verifier.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the session issuer.
type Config struct {
	// Secret is the HMAC signing key (required).
	Secret string `mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `mapstructure:"method"`

	// Issuer is the "iss" claim stamped into every token.
	Issuer string `mapstructure:"issuer"`

	// DefaultTTL is the lifetime of a non-persistent session (default: 1h).
	DefaultTTL time.Duration `mapstructure:"default_ttl"`

	// RememberMeTTL is the lifetime of a persistent "remember me" session
	// (default: 14 days).
	RememberMeTTL time.Duration `mapstructure:"remember_me_ttl"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.Issuer == "" {
		c.Issuer = "authcore"
	}
	if c.DefaultTTL == 0 {
		c.DefaultTTL = time.Hour
	}
	if c.RememberMeTTL == 0 {
		c.RememberMeTTL = 14 * 24 * time.Hour
	}
}

// Validate checks required fields. Both TTLs must be positive so that
// ExpiresAt is always strictly after IssuedAt.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return fmt.Errorf("unsupported signing method: %s", c.Method)
	}
	if c.DefaultTTL <= 0 {
		return fmt.Errorf("default_ttl must be positive (got: %s)", c.DefaultTTL)
	}
	if c.RememberMeTTL <= 0 {
		return fmt.Errorf("remember_me_ttl must be positive (got: %s)", c.RememberMeTTL)
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup summary.
func (c *Config) Describe() string {
	return fmt.Sprintf("%s TTL=%s remember_me=%s", c.Method, c.DefaultTTL, c.RememberMeTTL)
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

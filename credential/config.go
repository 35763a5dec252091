package credential

import (
	"fmt"
	"time"
)

// LockoutConfig configures the failed-attempt lockout policy.
type LockoutConfig struct {
	// MaxFailedAttempts is the number of consecutive failed verifications
	// that triggers a lockout (default: 3).
	MaxFailedAttempts int `mapstructure:"max_failed_attempts"`

	// LockoutDuration is how long an account stays locked (default: 5m).
	LockoutDuration time.Duration `mapstructure:"lockout_duration"`

	// RequireConfirmed rejects sign-in for unconfirmed accounts and
	// re-sends the confirmation email. Unset defaults to true; only an
	// explicit false disables the check.
	RequireConfirmed *bool `mapstructure:"require_confirmed"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *LockoutConfig) ApplyDefaults() {
	if c.MaxFailedAttempts == 0 {
		c.MaxFailedAttempts = 3
	}
	if c.LockoutDuration == 0 {
		c.LockoutDuration = 5 * time.Minute
	}
	if c.RequireConfirmed == nil {
		required := true
		c.RequireConfirmed = &required
	}
}

// ConfirmationRequired reports whether unconfirmed accounts are rejected.
func (c *LockoutConfig) ConfirmationRequired() bool {
	return c.RequireConfirmed == nil || *c.RequireConfirmed
}

// Validate checks the configuration.
func (c *LockoutConfig) Validate() error {
	if c.MaxFailedAttempts < 1 {
		return fmt.Errorf("max_failed_attempts must be >= 1 (got: %d)", c.MaxFailedAttempts)
	}
	if c.LockoutDuration < 0 {
		return fmt.Errorf("lockout_duration must be non-negative (got: %s)", c.LockoutDuration)
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup summary.
func (c *LockoutConfig) Describe() string {
	return fmt.Sprintf("lockout after %d failures for %s confirmed=%t",
		c.MaxFailedAttempts, c.LockoutDuration, c.ConfirmationRequired())
}

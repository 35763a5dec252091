package password

import (
	"fmt"
	"strings"
	"unicode"
)

// CheckPolicy verifies a candidate password against the complexity policy in
// cfg. It returns nil when the password satisfies every enabled rule, or an
// error naming the first violated rule. Used when setting or changing a
// password, never during verification of an existing credential.
func CheckPolicy(cfg Config, candidate string) error {
	cfg.ApplyDefaults()

	if len(candidate) < cfg.MinLength {
		return fmt.Errorf("password must be at least %d characters", cfg.MinLength)
	}
	if cfg.RequireDigit && !strings.ContainsFunc(candidate, unicode.IsDigit) {
		return fmt.Errorf("password must contain at least one digit")
	}
	if cfg.RequireUppercase && !strings.ContainsFunc(candidate, unicode.IsUpper) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if cfg.RequireNonAlphanumeric && !strings.ContainsFunc(candidate, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		return fmt.Errorf("password must contain at least one non-alphanumeric character")
	}
	return nil
}

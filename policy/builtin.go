package policy

import "github.com/adboard/authcore/identity"

// MinimumAgeName is the policy name used for the minimum-age gate on
// age-restricted listings.
const MinimumAgeName = "minimum-age"

// MinimumAgeClaim is the attribute claim the minimum-age policy checks.
const MinimumAgeClaim = "is_minimum_age"

// RequireClaim builds a predicate that passes when the principal carries a
// claim with the given type and value.
func RequireClaim(claimType, value string) Predicate {
	return func(p identity.Principal) bool {
		return p.HasClaim(claimType, value)
	}
}

// MinimumAge is the predicate behind the minimum-age policy: the principal
// must carry is_minimum_age=true.
func MinimumAge() Predicate {
	return RequireClaim(MinimumAgeClaim, "true")
}

// RequireRole builds a predicate that passes when any of the principal's
// role claims matches the pattern. Patterns support the wildcard scheme of
// MatchPattern, so "admin" matches exactly and "moderator:*" matches any
// scoped moderator role.
func RequireRole(pattern string) Predicate {
	return func(p identity.Principal) bool {
		for _, role := range p.Roles() {
			if MatchPattern(pattern, role) {
				return true
			}
		}
		return false
	}
}

// RequireAnyRole builds a predicate that passes when any of the principal's
// role claims matches any of the patterns.
func RequireAnyRole(patterns ...string) Predicate {
	return func(p identity.Principal) bool {
		for _, role := range p.Roles() {
			if MatchAny(patterns, role) {
				return true
			}
		}
		return false
	}
}

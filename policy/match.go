package policy

import "strings"

// MatchPattern checks if a role pattern matches a granted role.
// Supports "resource:action" format with wildcards:
//
//   - "*:*"             matches everything
//   - "listing:*"       matches "listing:edit", "listing:delete", etc.
//   - "*:edit"          matches "listing:edit", "profile:edit", etc.
//   - "listing:edit"    matches only "listing:edit"
//
// Both pattern and role use ":" as the separator. If either doesn't contain
// ":", they are compared as plain strings with wildcard support.
func MatchPattern(pattern, role string) bool {
	if pattern == role || pattern == "*" || pattern == "*:*" {
		return true
	}

	patParts := strings.SplitN(pattern, ":", 2)
	roleParts := strings.SplitN(role, ":", 2)

	if len(patParts) != len(roleParts) {
		return matchWildcard(pattern, role)
	}
	if len(patParts) == 1 {
		return matchWildcard(pattern, role)
	}
	return matchWildcard(patParts[0], roleParts[0]) && matchWildcard(patParts[1], roleParts[1])
}

// MatchAny returns true if any of the patterns match the role.
func MatchAny(patterns []string, role string) bool {
	for _, p := range patterns {
		if MatchPattern(p, role) {
			return true
		}
	}
	return false
}

// matchWildcard compares two strings where "*" matches anything.
func matchWildcard(pattern, value string) bool {
	return pattern == "*" || pattern == value
}

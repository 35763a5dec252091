// Package identity defines the data model of the auth core: claims,
// principals, and user records, plus the builder that turns a user record
// into a principal.
//
// Claims are an ordered sequence of typed key-value pairs. Duplicates by
// type are allowed (a principal typically carries one claim per role), and
// order is significant: the builder produces a deterministic order and the
// session layer preserves it across an issue/resolve round trip.
package identity

// Well-known claim types. Custom attribute claims use arbitrary types.
const (
	ClaimIdentity = "identity"
	ClaimName     = "name"
	ClaimRole     = "role"
)

// Claim is a single typed statement about a principal.
type Claim struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Principal represents "who is making this request" as an ordered, immutable
// sequence of claims. The zero value carries no claims and is never
// considered authenticated.
type Principal struct {
	claims []Claim
}

// NewPrincipal builds a principal from the given claims. The slice is copied
// so the principal cannot be mutated through the caller's backing array.
func NewPrincipal(claims []Claim) Principal {
	cp := make([]Claim, len(claims))
	copy(cp, claims)
	return Principal{claims: cp}
}

// Claims returns a copy of the ordered claim sequence.
func (p Principal) Claims() []Claim {
	cp := make([]Claim, len(p.claims))
	copy(cp, p.claims)
	return cp
}

// IsAuthenticated reports whether the principal carries at least one
// identity claim. A principal with zero claims is never authenticated.
func (p Principal) IsAuthenticated() bool {
	for _, c := range p.claims {
		if c.Type == ClaimIdentity {
			return true
		}
	}
	return false
}

// Value returns the value of the first claim of the given type.
func (p Principal) Value(claimType string) (string, bool) {
	for _, c := range p.claims {
		if c.Type == claimType {
			return c.Value, true
		}
	}
	return "", false
}

// Values returns the values of every claim of the given type, in order.
func (p Principal) Values(claimType string) []string {
	var values []string
	for _, c := range p.claims {
		if c.Type == claimType {
			values = append(values, c.Value)
		}
	}
	return values
}

// HasClaim reports whether the principal carries a claim with the given
// type and value.
func (p Principal) HasClaim(claimType, value string) bool {
	for _, c := range p.claims {
		if c.Type == claimType && c.Value == value {
			return true
		}
	}
	return false
}

// Roles returns the values of every role claim, in order.
func (p Principal) Roles() []string {
	return p.Values(ClaimRole)
}

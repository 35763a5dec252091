package identity

// AttributeClaim declares a custom claim the builder emits when the user
// record carries a value for it. Registered at construction time, emitted
// in registration order.
type AttributeClaim struct {
	// Type is the claim type to emit.
	Type string
	// Default, when non-empty, is emitted for users without the attribute.
	Default string
}

// Builder constructs principals from user records. It is pure: the same
// user snapshot always yields the same claim sequence, in a fixed order:
// identity claim first, display-name claim second, one role claim per role
// in stored order, then registered attribute claims in registration order.
type Builder struct {
	attributes []AttributeClaim
}

// NewBuilder creates a Builder emitting the given custom attribute claims
// after the standard identity, name, and role claims.
func NewBuilder(attributes ...AttributeClaim) *Builder {
	return &Builder{attributes: attributes}
}

// Build constructs the principal for the given user record.
func (b *Builder) Build(user *User) Principal {
	claims := make([]Claim, 0, 2+len(user.Roles)+len(b.attributes))
	claims = append(claims, Claim{Type: ClaimIdentity, Value: user.Identifier})
	claims = append(claims, Claim{Type: ClaimName, Value: user.DisplayName})
	for _, role := range user.Roles {
		claims = append(claims, Claim{Type: ClaimRole, Value: role})
	}
	for _, attr := range b.attributes {
		if v, ok := user.Attributes[attr.Type]; ok {
			claims = append(claims, Claim{Type: attr.Type, Value: v})
		} else if attr.Default != "" {
			claims = append(claims, Claim{Type: attr.Type, Value: attr.Default})
		}
	}
	return NewPrincipal(claims)
}

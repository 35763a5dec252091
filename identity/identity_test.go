package identity

import (
	"reflect"
	"testing"
	"time"
)

func TestPrincipal_ZeroClaims_NeverAuthenticated(t *testing.T) {
	var p Principal
	if p.IsAuthenticated() {
		t.Error("zero-claim principal must not be authenticated")
	}

	p = NewPrincipal([]Claim{{Type: ClaimRole, Value: "admin"}})
	if p.IsAuthenticated() {
		t.Error("principal without an identity claim must not be authenticated")
	}

	p = NewPrincipal([]Claim{{Type: ClaimIdentity, Value: "admin@test.com"}})
	if !p.IsAuthenticated() {
		t.Error("principal with an identity claim must be authenticated")
	}
}

func TestPrincipal_Immutable(t *testing.T) {
	claims := []Claim{{Type: ClaimIdentity, Value: "admin@test.com"}}
	p := NewPrincipal(claims)

	claims[0].Value = "attacker@test.com"
	if v, _ := p.Value(ClaimIdentity); v != "admin@test.com" {
		t.Errorf("principal mutated through the caller's slice: %q", v)
	}

	got := p.Claims()
	got[0].Value = "attacker@test.com"
	if v, _ := p.Value(ClaimIdentity); v != "admin@test.com" {
		t.Errorf("principal mutated through Claims(): %q", v)
	}
}

func TestPrincipal_DuplicateTypes(t *testing.T) {
	p := NewPrincipal([]Claim{
		{Type: ClaimIdentity, Value: "admin@test.com"},
		{Type: ClaimRole, Value: "admin"},
		{Type: ClaimRole, Value: "moderator"},
	})
	if got := p.Roles(); !reflect.DeepEqual(got, []string{"admin", "moderator"}) {
		t.Errorf("expected both roles in order, got %v", got)
	}
	if !p.HasClaim(ClaimRole, "moderator") {
		t.Error("expected HasClaim to find the second role claim")
	}
}

func TestBuilder_ClaimOrder(t *testing.T) {
	builder := NewBuilder(
		AttributeClaim{Type: "is_minimum_age"},
		AttributeClaim{Type: "region", Default: "unknown"},
	)
	user := &User{
		ID:          "u-1",
		Identifier:  "admin@test.com",
		DisplayName: "Site Admin",
		Roles:       []string{"admin", "moderator"},
		Attributes:  map[string]string{"is_minimum_age": "true"},
	}

	want := []Claim{
		{Type: ClaimIdentity, Value: "admin@test.com"},
		{Type: ClaimName, Value: "Site Admin"},
		{Type: ClaimRole, Value: "admin"},
		{Type: ClaimRole, Value: "moderator"},
		{Type: "is_minimum_age", Value: "true"},
		{Type: "region", Value: "unknown"},
	}
	got := builder.Build(user).Claims()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("claim order mismatch:\n got  %v\n want %v", got, want)
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	builder := NewBuilder(AttributeClaim{Type: "is_minimum_age"})
	user := &User{
		Identifier:  "user@test.com",
		DisplayName: "User",
		Roles:       []string{"member"},
		Attributes:  map[string]string{"is_minimum_age": "true"},
	}
	first := builder.Build(user).Claims()
	for i := 0; i < 50; i++ {
		if got := builder.Build(user).Claims(); !reflect.DeepEqual(got, first) {
			t.Fatalf("build %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestBuilder_SkipsAbsentAttributeWithoutDefault(t *testing.T) {
	builder := NewBuilder(AttributeClaim{Type: "is_minimum_age"})
	user := &User{Identifier: "user@test.com", DisplayName: "User"}
	p := builder.Build(user)
	if _, ok := p.Value("is_minimum_age"); ok {
		t.Error("attribute claim without value or default must not be emitted")
	}
}

func TestUser_LockedOut(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	u := &User{}
	if u.LockedOut(now) {
		t.Error("user without lockout must not be locked out")
	}

	past := now.Add(-time.Minute)
	u.LockoutUntil = &past
	if u.LockedOut(now) {
		t.Error("expired lockout must not lock out")
	}

	future := now.Add(time.Minute)
	u.LockoutUntil = &future
	if !u.LockedOut(now) {
		t.Error("future lockout must lock out")
	}
}

package domain

import (
	"testing"
)

func TestNormalizeRolesDeduplicatesPreservingOrder(t *testing.T) {
	set, err := NormalizeRoles([]string{"admin", "member", "admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(set))
	}
	if set[0] != RoleAdmin || set[1] != RoleMember {
		t.Fatalf("expected [admin member], got %v", set.Strings())
	}
}

func TestNormalizeRolesRejectsNil(t *testing.T) {
	_, err := NormalizeRoles(nil)
	if err == nil {
		t.Fatal("expected nil roles to be rejected")
	}
	if !HasKey(err, KeyValidation) {
		t.Fatalf("expected validation key, got %v", err)
	}
}

func TestNormalizeRolesAcceptsEmpty(t *testing.T) {
	set, err := NormalizeRoles([]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set == nil {
		t.Fatal("empty input must produce a non-nil empty set")
	}
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %v", set.Strings())
	}
}

func TestNormalizeRolesRejectsUnknownLabel(t *testing.T) {
	_, err := NormalizeRoles([]string{"admin", "owner"})
	if err == nil {
		t.Fatal("expected unknown role label to be rejected")
	}
}

func TestRoleSetHasAdmin(t *testing.T) {
	if (RoleSet{RoleMember}).HasAdmin() {
		t.Fatal("member-only set must not report admin")
	}
	if !(RoleSet{RoleMember, RoleAdmin}).HasAdmin() {
		t.Fatal("set containing admin must report admin")
	}
	if (RoleSet{}).HasAdmin() {
		t.Fatal("empty set must not report admin")
	}
}

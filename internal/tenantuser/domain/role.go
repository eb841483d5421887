// Package domain holds the tenant membership domain model: the role
// enumeration, normalized role sets, and the pure business rules guarding
// membership mutations.
package domain

import (
	"raally_backend/platform/apperr"
)

// Role is a membership role label within a tenant.
type Role string

const (
	// RoleAdmin grants full administrative access to the tenant.
	RoleAdmin Role = "admin"
	// RoleMember grants regular access without administration rights.
	RoleMember Role = "member"
)

// ParseRole converts a raw string into a Role, rejecting unknown labels.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleMember:
		return Role(raw), nil
	default:
		return "", apperr.Validation("unknown role: " + raw).WithKey(KeyValidation)
	}
}

// String returns the wire representation of the role.
func (r Role) String() string { return string(r) }

// RoleSet is a de-duplicated, order-of-first-appearance role list.
// The zero value (nil) means "absent", which is distinct from an empty set:
// an empty set demotes a member to no explicit role, absent is invalid input.
type RoleSet []Role

// NormalizeRoles builds a RoleSet from raw labels. Duplicates collapse to a
// single entry, unknown labels fail, and a nil input is rejected so callers
// cannot confuse "no roles field" with "empty roles field".
func NormalizeRoles(raw []string) (RoleSet, error) {
	if raw == nil {
		return nil, apperr.Validation("roles is required (can be empty)").WithKey(KeyValidation)
	}

	seen := make(map[Role]struct{}, len(raw))
	set := make(RoleSet, 0, len(raw))
	for _, label := range raw {
		role, err := ParseRole(label)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		set = append(set, role)
	}
	return set, nil
}

// Contains reports whether the set holds the given role.
func (s RoleSet) Contains(role Role) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// HasAdmin reports whether the set retains administrative access.
func (s RoleSet) HasAdmin() bool {
	return s.Contains(RoleAdmin)
}

// Strings returns the raw labels for persistence.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

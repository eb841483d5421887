package domain

import (
	"time"

	tenantdomain "raally_backend/internal/tenant/domain"

	"github.com/google/uuid"
)

// Tenant is the snapshot of the current tenant a mutation runs against.
// It is assembled by the upstream authentication layer; the membership core
// re-checks business rules against it but trusts its session legitimacy.
type Tenant struct {
	ID         uuid.UUID
	Name       string
	Plan       tenantdomain.PlanTier
	PlanStatus tenantdomain.PlanStatus
	// PlanUserID designates the billing-responsible member for a paid plan.
	PlanUserID *uuid.UUID
}

// Actor is the authenticated user performing a mutation, carrying the roles
// they hold within the current tenant.
type Actor struct {
	ID    uuid.UUID
	Email string
	Roles RoleSet
}

// MembershipStatus is the lifecycle status of a tenant membership.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipInvited MembershipStatus = "invited"
)

// Membership is the relationship between a user and a tenant.
type Membership struct {
	TenantID  uuid.UUID
	UserID    uuid.UUID
	Roles     RoleSet
	Status    MembershipStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

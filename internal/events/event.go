// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	platformevents "raally_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = platformevents.Event
	Bus         = platformevents.Bus
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	BaseEvent   = platformevents.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = platformevents.NewBaseEvent

// =============================================================================
// Tenant Domain Events
// =============================================================================

// TenantCreated is published when a new tenant is onboarded.
type TenantCreated struct {
	BaseEvent
	TenantID    uuid.UUID `json:"tenantId"`
	Name        string    `json:"name"`
	OwnerUserID uuid.UUID `json:"ownerUserId"`
}

func (e TenantCreated) EventName() string { return "tenant.created" }

// =============================================================================
// Tenant Membership Domain Events
// =============================================================================

// MemberRolesUpdated is published after a member's role set is committed.
type MemberRolesUpdated struct {
	BaseEvent
	TenantID uuid.UUID `json:"tenantId"`
	UserID   uuid.UUID `json:"userId"`
	Roles    []string  `json:"roles"`
}

func (e MemberRolesUpdated) EventName() string { return "tenantuser.roles_updated" }

// MemberRemoved is published for each user removed from a tenant, after the
// removal batch commits.
type MemberRemoved struct {
	BaseEvent
	TenantID   uuid.UUID `json:"tenantId"`
	TenantName string    `json:"tenantName"`
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
}

func (e MemberRemoved) EventName() string { return "tenantuser.member_removed" }

// UserInvited is published when a user is invited into a tenant. The token
// is the raw invitation token; only its hash is persisted.
type UserInvited struct {
	BaseEvent
	TenantID   uuid.UUID `json:"tenantId"`
	TenantName string    `json:"tenantName"`
	Email      string    `json:"email"`
	Roles      []string  `json:"roles"`
	Token      string    `json:"token"`
}

func (e UserInvited) EventName() string { return "tenantuser.user_invited" }

package repository

import (
	"context"
	"time"

	"raally_backend/internal/tenantuser/domain"

	"github.com/google/uuid"
)

// User is the slice of the user record the membership core needs. Users are
// never hard-deleted here; only their tenant relationship is mutated.
type User struct {
	ID        uuid.UUID
	Email     string
	FirstName *string
	LastName  *string
}

// Member is a tenant member joined with their user record, for listings.
type Member struct {
	User      User
	Roles     domain.RoleSet
	Status    domain.MembershipStatus
	CreatedAt time.Time
}

// Txn is one unit of work. All mutations inside it commit or roll back as
// a whole.
type Txn interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the transactional store adapter consumed by the membership
// services. The pgx implementation lives in this package; tests substitute
// an in-memory fake.
type Store interface {
	// Begin opens a new unit of work.
	Begin(ctx context.Context) (Txn, error)

	// FindUserByID resolves a user record. Returns apperr.NotFound when the
	// id does not resolve.
	FindUserByID(ctx context.Context, id uuid.UUID) (User, error)

	// FindUserByEmail resolves a user by case-insensitive email. Returns
	// apperr.NotFound when absent.
	FindUserByEmail(ctx context.Context, email string) (User, error)

	// CreateUser inserts a bare user record (no credential) inside the
	// given unit of work, for invitation onboarding.
	CreateUser(ctx context.Context, txn Txn, email string) (User, error)

	// FindMembership loads the membership of a user within a tenant.
	// Returns apperr.NotFound when absent.
	FindMembership(ctx context.Context, tenantID, userID uuid.UUID) (domain.Membership, error)

	// UpdateMembershipRoles persists a new role set inside the unit of work.
	UpdateMembershipRoles(ctx context.Context, txn Txn, tenantID, userID uuid.UUID, roles domain.RoleSet) error

	// DestroyMembership removes a user's membership inside the unit of work.
	DestroyMembership(ctx context.Context, txn Txn, tenantID, userID uuid.UUID) error

	// CreateMembership inserts an invited membership with a hashed
	// invitation token inside the unit of work.
	CreateMembership(ctx context.Context, txn Txn, membership domain.Membership, invitationTokenHash string) error

	// ListMembers returns all members of a tenant with their role sets.
	ListMembers(ctx context.Context, tenantID uuid.UUID) ([]Member, error)
}

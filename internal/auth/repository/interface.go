package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the persisted account record. PasswordHash is empty for accounts
// created through a social provider.
type User struct {
	ID            uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateUserParams contains parameters for creating an account.
type CreateUserParams struct {
	Email         string
	FirstName     string
	LastName      string
	PasswordHash  string
	EmailVerified bool
}

// AuthRepository defines the interface for authentication data operations.
// This allows services to depend on an abstraction rather than concrete
// implementation, improving testability and modularity.
type AuthRepository interface {
	// User operations
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)

	// Social identity links
	GetUserByProvider(ctx context.Context, provider, subjectID string) (User, error)
	LinkProvider(ctx context.Context, userID uuid.UUID, provider, subjectID string) error

	// Membership operations used during sign-in and onboarding
	DefaultMembership(ctx context.Context, userID uuid.UUID) (uuid.UUID, []string, error)
	// AcceptInvitation only matches invitations issued at or after
	// issuedAfter; older invitations are treated as not found.
	AcceptInvitation(ctx context.Context, tokenHash string, userID uuid.UUID, issuedAfter time.Time) (uuid.UUID, error)
	CreateTenantWithOwner(ctx context.Context, name string, userID uuid.UUID) (uuid.UUID, error)
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)

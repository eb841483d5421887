package repository

import (
	"context"
	"time"

	"raally_backend/internal/tenant/domain"

	"github.com/google/uuid"
)

// Tenant is the persisted tenant record. Version supports optimistic
// concurrency on plan-owner changes.
type Tenant struct {
	ID         uuid.UUID
	Name       string
	Plan       domain.PlanTier
	PlanStatus domain.PlanStatus
	PlanUserID *uuid.UUID
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateParams contains parameters for creating a tenant.
type CreateParams struct {
	Name string
}

// Repository provides tenant record persistence.
type Repository interface {
	// GetByID loads a tenant. Returns apperr.NotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (Tenant, error)

	// Create inserts a new tenant on the free plan.
	Create(ctx context.Context, params CreateParams) (Tenant, error)

	// UpdatePlanOwner designates the billing-responsible user for a plan
	// change, guarded by a compare-and-swap on the tenant version. A stale
	// version returns apperr.Conflict.
	UpdatePlanOwner(ctx context.Context, id uuid.UUID, plan domain.PlanTier, status domain.PlanStatus, planUserID uuid.UUID, version int64) (Tenant, error)
}

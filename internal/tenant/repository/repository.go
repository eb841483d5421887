package repository

import (
	"context"
	"errors"
	"fmt"

	"raally_backend/internal/tenant/domain"
	"raally_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tenantNotFoundMessage = "tenant not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tenant repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID loads a tenant by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Tenant, error) {
	var t Tenant
	var plan, status string

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, plan, plan_status, plan_user_id, version, created_at, updated_at
		FROM tenants WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &plan, &status, &t.PlanUserID, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, apperr.NotFound(tenantNotFoundMessage)
		}
		return Tenant{}, fmt.Errorf("get tenant by id: %w", err)
	}

	if t.Plan, err = domain.ParsePlanTier(plan); err != nil {
		return Tenant{}, fmt.Errorf("get tenant by id: %w", err)
	}
	if t.PlanStatus, err = domain.ParsePlanStatus(status); err != nil {
		return Tenant{}, fmt.Errorf("get tenant by id: %w", err)
	}
	return t, nil
}

// Create inserts a new tenant on the free plan.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Tenant, error) {
	var t Tenant
	var plan, status string

	err := r.pool.QueryRow(ctx, `
		INSERT INTO tenants (name, plan, plan_status)
		VALUES ($1, $2, $3)
		RETURNING id, name, plan, plan_status, plan_user_id, version, created_at, updated_at
	`, params.Name, string(domain.PlanFree), string(domain.PlanStatusActive)).Scan(
		&t.ID, &t.Name, &plan, &status, &t.PlanUserID, &t.Version, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return Tenant{}, fmt.Errorf("create tenant: %w", err)
	}

	t.Plan = domain.PlanTier(plan)
	t.PlanStatus = domain.PlanStatus(status)
	return t, nil
}

// UpdatePlanOwner designates the billing-responsible user with a
// compare-and-swap on the tenant version, so two concurrent plan-owner
// changes cannot both win.
func (r *Repo) UpdatePlanOwner(ctx context.Context, id uuid.UUID, plan domain.PlanTier, status domain.PlanStatus, planUserID uuid.UUID, version int64) (Tenant, error) {
	var t Tenant
	var planText, statusText string

	err := r.pool.QueryRow(ctx, `
		UPDATE tenants
		SET plan = $3, plan_status = $4, plan_user_id = $5, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $2
		RETURNING id, name, plan, plan_status, plan_user_id, version, created_at, updated_at
	`, id, version, string(plan), string(status), planUserID).Scan(
		&t.ID, &t.Name, &planText, &statusText, &t.PlanUserID, &t.Version, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the tenant is gone or someone else won the swap.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return Tenant{}, getErr
			}
			return Tenant{}, apperr.Conflict("tenant was modified concurrently")
		}
		return Tenant{}, fmt.Errorf("update plan owner: %w", err)
	}

	t.Plan = domain.PlanTier(planText)
	t.PlanStatus = domain.PlanStatus(statusText)
	return t, nil
}

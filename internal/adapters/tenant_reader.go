// Package adapters wires bounded contexts together by implementing one
// context's ports over another context's services. Keeping the glue here
// keeps the contexts themselves free of cross-imports.
package adapters

import (
	"context"

	tenantservice "raally_backend/internal/tenant/service"
	"raally_backend/internal/tenantuser/domain"
	"raally_backend/internal/tenantuser/ports"

	"github.com/google/uuid"
)

// TenantReaderAdapter implements ports.TenantReader over the tenant service.
type TenantReaderAdapter struct {
	tenants *tenantservice.Service
}

// NewTenantReaderAdapter creates a TenantReader backed by the tenant service.
func NewTenantReaderAdapter(tenants *tenantservice.Service) *TenantReaderAdapter {
	return &TenantReaderAdapter{tenants: tenants}
}

// Snapshot loads the current tenant state the membership rules run against.
func (a *TenantReaderAdapter) Snapshot(ctx context.Context, tenantID uuid.UUID) (domain.Tenant, error) {
	tenant, err := a.tenants.Get(ctx, tenantID)
	if err != nil {
		return domain.Tenant{}, err
	}
	return domain.Tenant{
		ID:         tenant.ID,
		Name:       tenant.Name,
		Plan:       tenant.Plan,
		PlanStatus: tenant.PlanStatus,
		PlanUserID: tenant.PlanUserID,
	}, nil
}

// Compile-time check that the adapter satisfies the port.
var _ ports.TenantReader = (*TenantReaderAdapter)(nil)

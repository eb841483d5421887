// Package ports declares the interfaces the tenant membership module needs
// from other bounded contexts. Implementations live in internal/adapters.
package ports

import (
	"context"

	"raally_backend/internal/tenantuser/domain"

	"github.com/google/uuid"
)

// TenantReader supplies the tenant snapshot a mutation request runs against.
type TenantReader interface {
	// Snapshot loads the current tenant state (plan, plan status, plan owner).
	Snapshot(ctx context.Context, tenantID uuid.UUID) (domain.Tenant, error)
}

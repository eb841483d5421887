package domain

import (
	tenantdomain "raally_backend/internal/tenant/domain"

	"github.com/google/uuid"
)

// The validation engine: pure predicates over a proposed mutation and the
// current tenant/actor state. No side effects; consumed by both the
// membership editor and the membership destroyer.

// IsRemovingPlanUser reports whether the proposed mutation would leave the
// tenant's designated plan owner without admin access (for role edits the
// proposed set may still retain admin; for removals the proposed set is
// empty, i.e. full revocation). A free plan, an undesignated owner, or a
// plan already winding down (cancel_at_period_end) disarm the rule.
func IsRemovingPlanUser(targetIDs []uuid.UUID, proposed RoleSet, tenant Tenant) bool {
	if proposed.HasAdmin() {
		return false
	}
	if !tenant.Plan.IsPaid() || tenant.PlanUserID == nil {
		return false
	}
	if tenant.PlanStatus == tenantdomain.PlanStatusCancelAtPeriodEnd {
		return false
	}
	for _, id := range targetIDs {
		if id == *tenant.PlanUserID {
			return true
		}
	}
	return false
}

// IsRemovingOwnAdminRole reports whether the actor is editing their own
// membership, currently holds admin in this tenant, and the proposed role
// set drops admin.
func IsRemovingOwnAdminRole(actor Actor, targetID uuid.UUID, proposed RoleSet) bool {
	if proposed.HasAdmin() {
		return false
	}
	if targetID != actor.ID {
		return false
	}
	return actor.Roles.HasAdmin()
}

// IsSelfDestruction reports whether the actor's own id appears in a removal
// target set.
func IsSelfDestruction(actor Actor, targetIDs []uuid.UUID) bool {
	for _, id := range targetIDs {
		if id == actor.ID {
			return true
		}
	}
	return false
}

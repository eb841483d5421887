package domain

import (
	"testing"

	tenantdomain "raally_backend/internal/tenant/domain"

	"github.com/google/uuid"
)

func paidTenant(planUserID *uuid.UUID) Tenant {
	return Tenant{
		ID:         uuid.New(),
		Name:       "acme",
		Plan:       tenantdomain.PlanGrowth,
		PlanStatus: tenantdomain.PlanStatusActive,
		PlanUserID: planUserID,
	}
}

func TestIsRemovingPlanUserTriggersOnOwnerTarget(t *testing.T) {
	owner := uuid.New()
	tenant := paidTenant(&owner)

	if !IsRemovingPlanUser([]uuid.UUID{uuid.New(), owner}, RoleSet{}, tenant) {
		t.Fatal("removing the plan owner on a paid plan must trigger the rule")
	}
	if IsRemovingPlanUser([]uuid.UUID{uuid.New()}, RoleSet{}, tenant) {
		t.Fatal("a target set without the owner must not trigger the rule")
	}
}

func TestIsRemovingPlanUserDisarmedWhenAdminRetained(t *testing.T) {
	owner := uuid.New()
	tenant := paidTenant(&owner)

	if IsRemovingPlanUser([]uuid.UUID{owner}, RoleSet{RoleAdmin}, tenant) {
		t.Fatal("a proposed set retaining admin must disarm the rule")
	}
}

func TestIsRemovingPlanUserDisarmedOnFreePlan(t *testing.T) {
	owner := uuid.New()
	tenant := paidTenant(&owner)
	tenant.Plan = tenantdomain.PlanFree

	if IsRemovingPlanUser([]uuid.UUID{owner}, RoleSet{}, tenant) {
		t.Fatal("a free plan must disarm the rule")
	}
}

func TestIsRemovingPlanUserDisarmedWithoutDesignatedOwner(t *testing.T) {
	tenant := paidTenant(nil)

	if IsRemovingPlanUser([]uuid.UUID{uuid.New()}, RoleSet{}, tenant) {
		t.Fatal("an undesignated plan owner must disarm the rule")
	}
}

func TestIsRemovingPlanUserDisarmedDuringCancellation(t *testing.T) {
	owner := uuid.New()
	tenant := paidTenant(&owner)
	tenant.PlanStatus = tenantdomain.PlanStatusCancelAtPeriodEnd

	if IsRemovingPlanUser([]uuid.UUID{owner}, RoleSet{}, tenant) {
		t.Fatal("a plan winding down must disarm the rule")
	}
}

func TestIsRemovingOwnAdminRole(t *testing.T) {
	actor := Actor{ID: uuid.New(), Email: "a@example.com", Roles: RoleSet{RoleAdmin}}

	if !IsRemovingOwnAdminRole(actor, actor.ID, RoleSet{RoleMember}) {
		t.Fatal("an admin dropping their own admin role must trigger the rule")
	}
	if IsRemovingOwnAdminRole(actor, actor.ID, RoleSet{RoleAdmin, RoleMember}) {
		t.Fatal("retaining admin must not trigger the rule")
	}
	if IsRemovingOwnAdminRole(actor, uuid.New(), RoleSet{}) {
		t.Fatal("editing another member must not trigger the rule")
	}

	nonAdmin := Actor{ID: uuid.New(), Email: "b@example.com", Roles: RoleSet{RoleMember}}
	if IsRemovingOwnAdminRole(nonAdmin, nonAdmin.ID, RoleSet{}) {
		t.Fatal("an actor without admin has nothing to lose; rule must not trigger")
	}
}

func TestIsSelfDestruction(t *testing.T) {
	actor := Actor{ID: uuid.New(), Email: "a@example.com"}

	if !IsSelfDestruction(actor, []uuid.UUID{uuid.New(), actor.ID}) {
		t.Fatal("a target set containing the actor must trigger the rule")
	}
	if IsSelfDestruction(actor, []uuid.UUID{uuid.New(), uuid.New()}) {
		t.Fatal("a target set without the actor must not trigger the rule")
	}
}

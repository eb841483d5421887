package service

import (
	"context"

	"raally_backend/internal/events"
	"raally_backend/internal/tenantuser/domain"
	"raally_backend/internal/tenantuser/repository"
	"raally_backend/platform/apperr"

	"github.com/google/uuid"
)

// UpdateRoles replaces the role set of one member within the tenant.
//
// Validation happens fully before the transaction opens: required fields,
// then the plan-owner and self-revocation rules. The write itself is a
// single atomic unit of work; any failure rolls it back and the triggering
// error is returned unchanged, so no partial role change is ever observable.
func (s *Service) UpdateRoles(ctx context.Context, tenant domain.Tenant, actor domain.Actor, targetUserID uuid.UUID, roles domain.RoleSet) error {
	if err := validateContext(tenant, actor); err != nil {
		return err
	}
	if targetUserID == uuid.Nil {
		return domain.ErrInvalidInput("id is required")
	}
	if roles == nil {
		return domain.ErrInvalidInput("roles is required (can be empty)")
	}

	targets := []uuid.UUID{targetUserID}
	if domain.IsRemovingPlanUser(targets, roles, tenant) {
		return domain.ErrPlanOwnerRevocation()
	}
	if domain.IsRemovingOwnAdminRole(actor, targetUserID, roles) {
		return domain.ErrSelfAdminRevocation()
	}

	txn, err := s.store.Begin(ctx)
	if err != nil {
		return asDomainError(err)
	}

	if err := s.updateAtStore(ctx, txn, tenant.ID, targetUserID, roles); err != nil {
		s.rollback(ctx, txn, "update roles rollback")
		return err
	}

	if err := txn.Commit(ctx); err != nil {
		s.rollback(ctx, txn, "update roles rollback")
		return asDomainError(err)
	}

	s.log.Info("member roles updated",
		"tenantId", tenant.ID,
		"userId", targetUserID,
		"roles", roles.Strings(),
	)
	s.bus.Publish(ctx, events.MemberRolesUpdated{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  tenant.ID,
		UserID:    targetUserID,
		Roles:     roles.Strings(),
	})
	return nil
}

func (s *Service) updateAtStore(ctx context.Context, txn repository.Txn, tenantID, targetUserID uuid.UUID, roles domain.RoleSet) error {
	if _, err := s.store.FindMembership(ctx, tenantID, targetUserID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return domain.ErrMembershipNotFound()
		}
		return asDomainError(err)
	}

	if err := s.store.UpdateMembershipRoles(ctx, txn, tenantID, targetUserID, roles); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return domain.ErrMembershipNotFound()
		}
		return asDomainError(err)
	}
	return nil
}

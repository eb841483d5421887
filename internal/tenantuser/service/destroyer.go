package service

import (
	"context"

	"raally_backend/internal/events"
	"raally_backend/internal/tenantuser/domain"
	"raally_backend/internal/tenantuser/repository"
	"raally_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RemoveUsers removes the given users from the tenant as one all-or-nothing
// batch.
//
// The per-id user lookups are independent reads and run concurrently; every
// lookup must succeed before any membership is touched. All removals happen
// inside one unit of work, so a single failure rolls the whole batch back
// and the triggering error is returned unchanged.
func (s *Service) RemoveUsers(ctx context.Context, tenant domain.Tenant, actor domain.Actor, targetIDs []uuid.UUID) error {
	if err := validateContext(tenant, actor); err != nil {
		return err
	}
	if len(targetIDs) == 0 {
		return domain.ErrInvalidInput("ids is required and cannot be empty")
	}

	// Removal is full revocation: the proposed role set is empty.
	if domain.IsRemovingPlanUser(targetIDs, domain.RoleSet{}, tenant) {
		return domain.ErrPlanOwnerRemoval()
	}
	if domain.IsSelfDestruction(actor, targetIDs) {
		return domain.ErrSelfRemoval()
	}

	txn, err := s.store.Begin(ctx)
	if err != nil {
		return asDomainError(err)
	}

	users, err := s.resolveTargets(ctx, targetIDs)
	if err != nil {
		s.rollback(ctx, txn, "remove users rollback")
		return err
	}

	removed := make([]repository.User, 0, len(users))
	for _, user := range users {
		err := s.store.DestroyMembership(ctx, txn, tenant.ID, user.ID)
		if err != nil {
			// A membership already gone is the desired end state.
			if apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			s.rollback(ctx, txn, "remove users rollback")
			return asDomainError(err)
		}
		removed = append(removed, user)
	}

	if err := txn.Commit(ctx); err != nil {
		s.rollback(ctx, txn, "remove users rollback")
		return asDomainError(err)
	}

	s.log.Info("members removed", "tenantId", tenant.ID, "count", len(removed))
	for _, user := range removed {
		s.bus.Publish(ctx, events.MemberRemoved{
			BaseEvent:  events.NewBaseEvent(),
			TenantID:   tenant.ID,
			TenantName: tenant.Name,
			UserID:     user.ID,
			Email:      user.Email,
		})
	}
	return nil
}

// resolveTargets looks up every target id concurrently. Any id that does
// not resolve fails the whole batch.
func (s *Service) resolveTargets(ctx context.Context, targetIDs []uuid.UUID) ([]repository.User, error) {
	users := make([]repository.User, len(targetIDs))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, id := range targetIDs {
		group.Go(func() error {
			user, err := s.store.FindUserByID(groupCtx, id)
			if err != nil {
				if apperr.Is(err, apperr.KindNotFound) {
					return domain.ErrUserNotFound()
				}
				return asDomainError(err)
			}
			users[i] = user
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return users, nil
}

// Package service implements the tenant membership mutation core: role
// edits, bulk removals, and invitations, each under transactional atomicity
// and the plan-owner / self-access business rules.
package service

import (
	"context"

	"raally_backend/internal/events"
	"raally_backend/internal/tenantuser/domain"
	"raally_backend/internal/tenantuser/repository"
	"raally_backend/platform/apperr"
	"raally_backend/platform/logger"

	"github.com/google/uuid"
)

// Service orchestrates tenant membership mutations.
type Service struct {
	store repository.Store
	bus   events.Bus
	log   *logger.Logger
}

// New creates a new tenant membership service.
func New(store repository.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// ListMembers returns all members of a tenant.
func (s *Service) ListMembers(ctx context.Context, tenantID uuid.UUID) ([]repository.Member, error) {
	if tenantID == uuid.Nil {
		return nil, domain.ErrInvalidInput("tenantId is required")
	}
	members, err := s.store.ListMembers(ctx, tenantID)
	if err != nil {
		return nil, asDomainError(err)
	}
	return members, nil
}

// Actor assembles the acting user's context within the tenant: their
// identity plus the roles they currently hold there. A caller without a
// membership in the tenant is rejected.
func (s *Service) Actor(ctx context.Context, tenantID, userID uuid.UUID, email string) (domain.Actor, error) {
	membership, err := s.store.FindMembership(ctx, tenantID, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return domain.Actor{}, apperr.Forbidden("not a member of this tenant")
		}
		return domain.Actor{}, asDomainError(err)
	}
	return domain.Actor{ID: userID, Email: email, Roles: membership.Roles}, nil
}

// validateContext checks the fields every membership mutation requires.
// Failures surface before any transaction opens.
func validateContext(tenant domain.Tenant, actor domain.Actor) error {
	if tenant.ID == uuid.Nil {
		return domain.ErrInvalidInput("tenantId is required")
	}
	if actor.ID == uuid.Nil {
		return domain.ErrInvalidInput("currentUser.id is required")
	}
	if actor.Email == "" {
		return domain.ErrInvalidInput("currentUser.email is required")
	}
	return nil
}

// rollback discards the unit of work. The triggering error is what the
// caller sees; a rollback failure is only logged.
func (s *Service) rollback(ctx context.Context, txn repository.Txn, op string) {
	if err := txn.Rollback(ctx); err != nil {
		s.log.DatabaseError(op, err)
	}
}

// asDomainError passes typed domain errors through unchanged and wraps raw
// store failures so the caller always sees a distinguishable kind.
func asDomainError(err error) error {
	if _, ok := err.(*apperr.Error); ok {
		return err
	}
	return domain.ErrStoreFailure(err)
}

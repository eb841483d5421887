// Package service holds the tenant workspace business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"raally_backend/internal/events"
	"raally_backend/internal/tenant/domain"
	"raally_backend/internal/tenant/repository"
	"raally_backend/platform/apperr"
	"raally_backend/platform/logger"

	"github.com/google/uuid"
)

// Service coordinates tenant workspace operations.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new tenant service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Get loads a tenant workspace by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Tenant{}, s.asDomainError(err)
	}
	return tenant, nil
}

// Create provisions a new workspace on the free plan and announces it on
// the event bus so downstream listeners can react.
func (s *Service) Create(ctx context.Context, name string, createdBy uuid.UUID) (repository.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Tenant{}, apperr.Validation("tenant name is required")
	}

	tenant, err := s.repo.Create(ctx, repository.CreateParams{Name: name})
	if err != nil {
		return repository.Tenant{}, s.asDomainError(err)
	}

	// Creation is announced synchronously so a failed subscriber surfaces
	// to the caller instead of leaving downstream state half-initialized.
	if err := s.bus.PublishSync(ctx, events.TenantCreated{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    tenant.ID,
		Name:        tenant.Name,
		OwnerUserID: createdBy,
	}); err != nil {
		return repository.Tenant{}, err
	}
	return tenant, nil
}

// AssignPlanOwner upgrades the workspace plan and records which user the
// subscription belongs to. The caller supplies the version it last read; a
// concurrent change surfaces as a conflict instead of a silent overwrite.
func (s *Service) AssignPlanOwner(ctx context.Context, tenantID uuid.UUID, plan domain.PlanTier, planUserID uuid.UUID, version int64) (repository.Tenant, error) {
	if !plan.IsPaid() {
		return repository.Tenant{}, apperr.Validation("plan owner requires a paid plan")
	}

	tenant, err := s.repo.UpdatePlanOwner(ctx, tenantID, plan, domain.PlanStatusActive, planUserID, version)
	if err != nil {
		return repository.Tenant{}, s.asDomainError(err)
	}

	s.log.Info("plan owner assigned",
		"tenant_id", tenant.ID.String(),
		"plan", string(tenant.Plan),
		"plan_user_id", planUserID.String())
	return tenant, nil
}

func (s *Service) asDomainError(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	s.log.Error("tenant store failure", "error", err)
	return apperr.Wrap(apperr.KindInternal, "tenant store failure", fmt.Errorf("tenant store: %w", err)).WithKey("errors.database")
}

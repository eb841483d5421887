// Package service provides business logic for work assignments.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"raally_backend/internal/assignment/repository"
	"raally_backend/internal/events"
	"raally_backend/platform/apperr"
	"raally_backend/platform/logger"

	"github.com/google/uuid"
)

// assignmentStatuses is the closed set of assignment lifecycle states.
var assignmentStatuses = map[string]bool{
	"open":   true,
	"active": true,
	"closed": true,
}

// Service provides business logic for assignments.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new assignment service and subscribes it to membership
// removal events so departing members are unassigned from their work.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	s := &Service{repo: repo, log: log}
	bus.Subscribe("tenantuser.member_removed", events.HandlerFunc(s.onMemberRemoved))
	return s
}

// Get retrieves an assignment within the tenant.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (repository.Assignment, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// List retrieves all assignments of the tenant.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]repository.Assignment, error) {
	return s.repo.List(ctx, tenantID)
}

// Create creates a new assignment in the tenant.
func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Assignment, error) {
	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		return repository.Assignment{}, apperr.Validation("title is required")
	}
	if params.HoursPerWeek < 0 || params.HoursPerWeek > 168 {
		return repository.Assignment{}, apperr.Validation("hours per week out of range")
	}
	return s.repo.Create(ctx, params)
}

// Update applies a partial update to an assignment in the tenant.
func (s *Service) Update(ctx context.Context, params repository.UpdateParams) (repository.Assignment, error) {
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return repository.Assignment{}, apperr.Validation("title cannot be empty")
	}
	if params.Status != nil && !assignmentStatuses[*params.Status] {
		return repository.Assignment{}, apperr.Validation("unknown assignment status: " + *params.Status)
	}
	if params.HoursPerWeek != nil && (*params.HoursPerWeek < 0 || *params.HoursPerWeek > 168) {
		return repository.Assignment{}, apperr.Validation("hours per week out of range")
	}
	return s.repo.Update(ctx, params)
}

// Delete removes an assignment from the tenant.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// onMemberRemoved unassigns work held by a removed member.
func (s *Service) onMemberRemoved(ctx context.Context, event events.Event) error {
	removed, ok := event.(events.MemberRemoved)
	if !ok {
		return errors.New("unexpected event payload for tenantuser.member_removed")
	}
	if err := s.repo.ClearAssignee(ctx, removed.TenantID, removed.UserID); err != nil {
		s.log.Error("clear assignee after member removal",
			"tenant_id", removed.TenantID.String(),
			"user_id", removed.UserID.String(),
			"error", err)
		return fmt.Errorf("clear assignee: %w", err)
	}
	return nil
}

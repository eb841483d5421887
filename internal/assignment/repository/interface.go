package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Assignment is a tenant-scoped work assignment record.
type Assignment struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Title          string
	Description    *string
	AssigneeUserID *uuid.UUID
	HoursPerWeek   int
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateParams contains parameters for creating an assignment.
type CreateParams struct {
	TenantID       uuid.UUID
	Title          string
	Description    *string
	AssigneeUserID *uuid.UUID
	HoursPerWeek   int
}

// UpdateParams contains parameters for updating an assignment. Nil fields
// keep their stored value.
type UpdateParams struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Title          *string
	Description    *string
	AssigneeUserID *uuid.UUID
	HoursPerWeek   *int
	Status         *string
}

// Repository provides assignment persistence. Every operation is scoped to
// a tenant; a row from another tenant behaves as absent.
type Repository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (Assignment, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]Assignment, error)
	Create(ctx context.Context, params CreateParams) (Assignment, error)
	Update(ctx context.Context, params UpdateParams) (Assignment, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ClearAssignee(ctx context.Context, tenantID, userID uuid.UUID) error
}

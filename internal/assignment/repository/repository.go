package repository

import (
	"context"
	"errors"
	"fmt"

	"raally_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const assignmentColumns = `id, tenant_id, title, description, assignee_user_id,
	hours_per_week, status, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new assignment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func (r *Repo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Assignment, error) {
	var a Assignment
	err := r.pool.QueryRow(ctx, `
		SELECT `+assignmentColumns+` FROM assignments
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, id).Scan(&a.ID, &a.TenantID, &a.Title, &a.Description, &a.AssigneeUserID,
		&a.HoursPerWeek, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Assignment{}, apperr.NotFound("assignment not found")
		}
		return Assignment{}, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (r *Repo) List(ctx context.Context, tenantID uuid.UUID) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+assignmentColumns+` FROM assignments
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var items []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.Title, &a.Description, &a.AssigneeUserID,
			&a.HoursPerWeek, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return items, nil
}

func (r *Repo) Create(ctx context.Context, params CreateParams) (Assignment, error) {
	var a Assignment
	err := r.pool.QueryRow(ctx, `
		INSERT INTO assignments (tenant_id, title, description, assignee_user_id, hours_per_week, status)
		VALUES ($1, $2, $3, $4, $5, 'open')
		RETURNING `+assignmentColumns+`
	`, params.TenantID, params.Title, params.Description, params.AssigneeUserID, params.HoursPerWeek).
		Scan(&a.ID, &a.TenantID, &a.Title, &a.Description, &a.AssigneeUserID,
			&a.HoursPerWeek, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Assignment{}, fmt.Errorf("create assignment: %w", err)
	}
	return a, nil
}

func (r *Repo) Update(ctx context.Context, params UpdateParams) (Assignment, error) {
	var a Assignment
	err := r.pool.QueryRow(ctx, `
		UPDATE assignments SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			assignee_user_id = COALESCE($5, assignee_user_id),
			hours_per_week = COALESCE($6, hours_per_week),
			status = COALESCE($7, status),
			updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+assignmentColumns+`
	`, params.TenantID, params.ID, params.Title, params.Description, params.AssigneeUserID,
		params.HoursPerWeek, params.Status).
		Scan(&a.ID, &a.TenantID, &a.Title, &a.Description, &a.AssigneeUserID,
			&a.HoursPerWeek, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Assignment{}, apperr.NotFound("assignment not found")
		}
		return Assignment{}, fmt.Errorf("update assignment: %w", err)
	}
	return a, nil
}

func (r *Repo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM assignments WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("assignment not found")
	}
	return nil
}

// ClearAssignee unassigns every assignment held by the user in the tenant.
// Used when a member leaves so assignments never point at a former member.
func (r *Repo) ClearAssignee(ctx context.Context, tenantID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE assignments SET assignee_user_id = NULL, updated_at = now()
		WHERE tenant_id = $1 AND assignee_user_id = $2
	`, tenantID, userID)
	if err != nil {
		return fmt.Errorf("clear assignee: %w", err)
	}
	return nil
}

// Package transport defines request and response DTOs for assignments.
package transport

import (
	"time"

	"raally_backend/internal/assignment/repository"
)

// CreateAssignmentRequest is the payload to create an assignment.
type CreateAssignmentRequest struct {
	Title          string  `json:"title" validate:"required,min=1,max=255"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	AssigneeUserID *string `json:"assigneeUserId" validate:"omitempty,uuid"`
	HoursPerWeek   int     `json:"hoursPerWeek" validate:"min=0,max=168"`
}

// UpdateAssignmentRequest is the payload for a partial assignment update.
type UpdateAssignmentRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	AssigneeUserID *string `json:"assigneeUserId" validate:"omitempty,uuid"`
	HoursPerWeek   *int    `json:"hoursPerWeek" validate:"omitempty,min=0,max=168"`
	Status         *string `json:"status" validate:"omitempty,oneof=open active closed"`
}

// AssignmentResponse is the wire representation of an assignment.
type AssignmentResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	AssigneeUserID *string   `json:"assigneeUserId,omitempty"`
	HoursPerWeek   int       `json:"hoursPerWeek"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AssignmentListResponse wraps a list of assignments.
type AssignmentListResponse struct {
	Items []AssignmentResponse `json:"items"`
	Total int                  `json:"total"`
}

// ToAssignmentResponse maps an assignment record to its wire representation.
func ToAssignmentResponse(a repository.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:           a.ID.String(),
		Title:        a.Title,
		Description:  a.Description,
		HoursPerWeek: a.HoursPerWeek,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.AssigneeUserID != nil {
		id := a.AssigneeUserID.String()
		resp.AssigneeUserID = &id
	}
	return resp
}

// ToAssignmentListResponse maps assignment records to a list response.
func ToAssignmentListResponse(items []repository.Assignment) AssignmentListResponse {
	out := make([]AssignmentResponse, len(items))
	for i, a := range items {
		out[i] = ToAssignmentResponse(a)
	}
	return AssignmentListResponse{Items: out, Total: len(out)}
}

// Package transport defines request and response DTOs for the tenant module.
package transport

import (
	"time"

	"raally_backend/internal/tenant/repository"
)

// CreateTenantRequest is the payload to provision a new workspace.
type CreateTenantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// AssignPlanOwnerRequest upgrades the workspace plan and designates the
// billing-responsible member. Version is the tenant version the client last
// read; a stale value yields a conflict.
type AssignPlanOwnerRequest struct {
	Plan       string `json:"plan" validate:"required,oneof=growth enterprise"`
	PlanUserID string `json:"planUserId" validate:"required,uuid"`
	Version    int64  `json:"version" validate:"min=0"`
}

// TenantResponse is the wire representation of a tenant workspace.
type TenantResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Plan       string    `json:"plan"`
	PlanStatus string    `json:"planStatus"`
	PlanUserID *string   `json:"planUserId,omitempty"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToTenantResponse maps a tenant record to its wire representation.
func ToTenantResponse(t repository.Tenant) TenantResponse {
	resp := TenantResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		Plan:       t.Plan.String(),
		PlanStatus: t.PlanStatus.String(),
		Version:    t.Version,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.PlanUserID != nil {
		id := t.PlanUserID.String()
		resp.PlanUserID = &id
	}
	return resp
}

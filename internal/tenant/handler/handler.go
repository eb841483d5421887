package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"raally_backend/internal/tenant/domain"
	"raally_backend/internal/tenant/service"
	"raally_backend/internal/tenant/transport"
	"raally_backend/platform/httpkit"
	"raally_backend/platform/validator"
)

const (
	msgInvalidRequest = "invalid request"
	msgNoTenant       = "no tenant selected"
)

// Handler handles HTTP requests for the tenant workspace.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new tenant handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Get returns the current tenant workspace.
// GET /api/v1/tenant
func (h *Handler) Get(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if identity.TenantID() == uuid.Nil {
		httpkit.Error(c, http.StatusForbidden, msgNoTenant)
		return
	}

	tenant, err := h.svc.Get(c.Request.Context(), identity.TenantID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToTenantResponse(tenant))
}

// AssignPlanOwner upgrades the plan of the current tenant and designates
// the billing-responsible member.
// PUT /api/v1/tenant/plan
func (h *Handler) AssignPlanOwner(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if identity.TenantID() == uuid.Nil {
		httpkit.Error(c, http.StatusForbidden, msgNoTenant)
		return
	}

	var req transport.AssignPlanOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := domain.ParsePlanTier(req.Plan)
	if httpkit.HandleError(c, err) {
		return
	}
	planUserID, err := uuid.Parse(req.PlanUserID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid plan user ID")
		return
	}

	tenant, err := h.svc.AssignPlanOwner(c.Request.Context(), identity.TenantID(), plan, planUserID, req.Version)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToTenantResponse(tenant))
}

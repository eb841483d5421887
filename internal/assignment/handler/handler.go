package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"raally_backend/internal/assignment/repository"
	"raally_backend/internal/assignment/service"
	"raally_backend/internal/assignment/transport"
	"raally_backend/platform/httpkit"
	"raally_backend/platform/validator"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidID      = "invalid assignment ID"
	msgNoTenant       = "no tenant selected"
)

// Handler handles HTTP requests for assignments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new assignment handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List returns all assignments of the current tenant.
// GET /api/v1/assignments
func (h *Handler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAssignmentListResponse(items))
}

// Get returns one assignment.
// GET /api/v1/assignments/:id
func (h *Handler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	item, err := h.svc.Get(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAssignmentResponse(item))
}

// Create creates a new assignment.
// POST /api/v1/assignments
func (h *Handler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var req transport.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	assignee, err := parseOptionalUUID(req.AssigneeUserID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid assignee user ID")
		return
	}

	item, err := h.svc.Create(c.Request.Context(), repository.CreateParams{
		TenantID:       tenantID,
		Title:          req.Title,
		Description:    req.Description,
		AssigneeUserID: assignee,
		HoursPerWeek:   req.HoursPerWeek,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, transport.ToAssignmentResponse(item))
}

// Update applies a partial update to an assignment.
// PATCH /api/v1/assignments/:id
func (h *Handler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req transport.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	assignee, err := parseOptionalUUID(req.AssigneeUserID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid assignee user ID")
		return
	}

	item, err := h.svc.Update(c.Request.Context(), repository.UpdateParams{
		ID:             id,
		TenantID:       tenantID,
		Title:          req.Title,
		Description:    req.Description,
		AssigneeUserID: assignee,
		HoursPerWeek:   req.HoursPerWeek,
		Status:         req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToAssignmentResponse(item))
}

// Delete removes an assignment.
// DELETE /api/v1/assignments/:id
func (h *Handler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), tenantID, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, false
	}
	if identity.TenantID() == uuid.Nil {
		httpkit.Error(c, http.StatusForbidden, msgNoTenant)
		return uuid.Nil, false
	}
	return identity.TenantID(), true
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

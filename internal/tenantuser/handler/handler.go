package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"raally_backend/internal/tenantuser/domain"
	"raally_backend/internal/tenantuser/ports"
	"raally_backend/internal/tenantuser/repository"
	"raally_backend/internal/tenantuser/service"
	"raally_backend/internal/tenantuser/transport"
	"raally_backend/platform/apperr"
	"raally_backend/platform/httpkit"
	"raally_backend/platform/validator"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidUserID  = "invalid user ID"
	msgNoTenant       = "no tenant selected"
)

// Handler handles HTTP requests for tenant membership management.
type Handler struct {
	svc     *service.Service
	tenants ports.TenantReader
	val     *validator.Validator
}

// New creates a new tenant membership handler.
func New(svc *service.Service, tenants ports.TenantReader, val *validator.Validator) *Handler {
	return &Handler{svc: svc, tenants: tenants, val: val}
}

// List returns all members of the current tenant.
// GET /api/v1/tenant/users
func (h *Handler) List(c *gin.Context) {
	tenant, _, ok := h.mutationContext(c)
	if !ok {
		return
	}

	members, err := h.svc.ListMembers(c.Request.Context(), tenant.ID)
	if h.handleError(c, err) {
		return
	}
	httpkit.OK(c, toMemberList(members))
}

// UpdateRoles replaces the role set of one member.
// PUT /api/v1/tenant/users/:id
func (h *Handler) UpdateRoles(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidUserID)
		return
	}

	var req transport.UpdateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	tenant, actor, ok := h.mutationContext(c)
	if !ok {
		return
	}

	roles, err := normalizeRolesField(req.Roles)
	if h.handleError(c, err) {
		return
	}

	err = h.svc.UpdateRoles(c.Request.Context(), tenant, actor, targetID, roles)
	if h.handleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove removes one or more members from the current tenant.
// DELETE /api/v1/tenant/users
func (h *Handler) Remove(c *gin.Context) {
	var req transport.RemoveUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	targetIDs, err := req.IDs.UUIDs()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	tenant, actor, ok := h.mutationContext(c)
	if !ok {
		return
	}

	err = h.svc.RemoveUsers(c.Request.Context(), tenant, actor, targetIDs)
	if h.handleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Invite invites email addresses into the current tenant.
// POST /api/v1/tenant/users
func (h *Handler) Invite(c *gin.Context) {
	var req transport.InviteUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	tenant, actor, ok := h.mutationContext(c)
	if !ok {
		return
	}

	roles, err := normalizeRolesField(req.Roles)
	if h.handleError(c, err) {
		return
	}

	err = h.svc.InviteUsers(c.Request.Context(), tenant, actor, req.Emails, roles)
	if h.handleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// mutationContext assembles the tenant snapshot and actor for the request.
func (h *Handler) mutationContext(c *gin.Context) (domain.Tenant, domain.Actor, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return domain.Tenant{}, domain.Actor{}, false
	}
	if identity.TenantID() == uuid.Nil {
		httpkit.Error(c, http.StatusForbidden, msgNoTenant)
		return domain.Tenant{}, domain.Actor{}, false
	}

	tenant, err := h.tenants.Snapshot(c.Request.Context(), identity.TenantID())
	if h.handleError(c, err) {
		return domain.Tenant{}, domain.Actor{}, false
	}

	actor, err := h.svc.Actor(c.Request.Context(), tenant.ID, identity.UserID(), identity.Email())
	if h.handleError(c, err) {
		return domain.Tenant{}, domain.Actor{}, false
	}

	return tenant, actor, true
}

// handleError stamps the requester language on domain errors before the
// shared mapping renders them.
func (h *Handler) handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if domainErr, ok := err.(*apperr.Error); ok && domainErr.Lang == "" {
		domainErr.Lang = httpkit.GetLanguage(c)
	}
	return httpkit.HandleError(c, err)
}

// normalizeRolesField maps an optional wire field to a domain role set,
// keeping absent distinct from empty.
func normalizeRolesField(raw *[]string) (domain.RoleSet, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput("roles is required (can be empty)")
	}
	value := *raw
	if value == nil {
		value = []string{}
	}
	return domain.NormalizeRoles(value)
}

func toMemberList(members []repository.Member) transport.MemberListResponse {
	items := make([]transport.MemberResponse, len(members))
	for i, member := range members {
		items[i] = transport.MemberResponse{
			ID:        member.User.ID,
			Email:     member.User.Email,
			FirstName: member.User.FirstName,
			LastName:  member.User.LastName,
			Roles:     member.Roles.Strings(),
			Status:    string(member.Status),
			CreatedAt: member.CreatedAt,
		}
	}
	return transport.MemberListResponse{Items: items, Total: len(items)}
}

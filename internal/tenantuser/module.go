// Package tenantuser provides the tenant membership bounded context module.
// It owns the membership lifecycle within a tenant: listing members,
// inviting users, editing role sets, and removing users.
package tenantuser

import (
	"raally_backend/internal/events"
	apphttp "raally_backend/internal/http"
	"raally_backend/internal/tenantuser/domain"
	"raally_backend/internal/tenantuser/handler"
	"raally_backend/internal/tenantuser/ports"
	"raally_backend/internal/tenantuser/repository"
	"raally_backend/internal/tenantuser/service"
	"raally_backend/platform/httpkit"
	"raally_backend/platform/logger"
	"raally_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the tenant membership bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   repository.Store
}

// NewModule creates and initializes the tenant membership module.
func NewModule(pool *pgxpool.Pool, tenants ports.TenantReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	store := repository.New(pool)
	svc := service.New(store, bus, log)
	h := handler.New(svc, tenants, val)

	return &Module{
		handler: h,
		service: svc,
		store:   store,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tenantuser"
}

// Service returns the membership service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Store returns the membership store for adapters.
func (m *Module) Store() repository.Store {
	return m.store
}

// RegisterRoutes mounts tenant membership routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/tenant/users")
	group.GET("", m.handler.List)

	// Mutations are admin-only within the current tenant.
	mutations := group.Group("")
	mutations.Use(httpkit.RequireRole(domain.RoleAdmin.String()))
	mutations.POST("", m.handler.Invite)
	mutations.PUT("/:id", m.handler.UpdateRoles)
	mutations.DELETE("", m.handler.Remove)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package tenant provides the tenant workspace bounded context module.
// It owns the tenant record itself: provisioning, plan tier, plan status,
// and the billing-responsible plan owner.
package tenant

import (
	"raally_backend/internal/events"
	apphttp "raally_backend/internal/http"
	"raally_backend/internal/tenant/handler"
	"raally_backend/internal/tenant/repository"
	"raally_backend/internal/tenant/service"
	"raally_backend/platform/httpkit"
	"raally_backend/platform/logger"
	"raally_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the tenant workspace bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the tenant module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tenant"
}

// Service returns the tenant service for adapters and other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts tenant routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/tenant")
	group.GET("", m.handler.Get)
	group.PUT("/plan", httpkit.RequireRole("admin"), m.handler.AssignPlanOwner)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

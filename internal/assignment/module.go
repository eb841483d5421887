// Package assignment provides the work assignment bounded context module.
// Assignments are the tenant's primary resource: units of work allocated to
// members for a number of hours per week.
package assignment

import (
	"raally_backend/internal/assignment/handler"
	"raally_backend/internal/assignment/repository"
	"raally_backend/internal/assignment/service"
	"raally_backend/internal/events"
	apphttp "raally_backend/internal/http"
	"raally_backend/platform/httpkit"
	"raally_backend/platform/logger"
	"raally_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the assignment bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the assignment module.
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
	return "assignment"
}

// RegisterRoutes mounts assignment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/assignments")
	group.GET("", m.handler.List)
	group.GET("/:id", m.handler.Get)

	// Mutations are admin-only within the current tenant.
	mutations := group.Group("")
	mutations.Use(httpkit.RequireRole("admin"))
	mutations.POST("", m.handler.Create)
	mutations.PATCH("/:id", m.handler.Update)
	mutations.DELETE("/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

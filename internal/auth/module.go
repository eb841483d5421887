// Package auth provides the authentication bounded context module:
// local credentials, social sign-in, and tenant onboarding.
package auth

import (
	"raally_backend/internal/auth/handler"
	"raally_backend/internal/auth/provider"
	"raally_backend/internal/auth/repository"
	"raally_backend/internal/auth/service"
	"raally_backend/internal/events"
	apphttp "raally_backend/internal/http"
	"raally_backend/platform/config"
	"raally_backend/platform/logger"
	"raally_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	providers := provider.NewRegistry(
		provider.NewGoogle(cfg),
		provider.NewFacebook(cfg),
	)
	svc := service.New(repo, providers, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by adapters.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.POST("/auth/onboard", m.handler.Onboard)
	ctx.Protected.GET("/users/me", m.handler.GetMe)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package clients provides the clients domain module.
package clients

import (
	apphttp "boekhoud_backend/internal/http"
	"boekhoud_backend/internal/clients/handler"
	"boekhoud_backend/internal/clients/repository"
	"boekhoud_backend/internal/clients/service"
	"boekhoud_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the clients domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new clients module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "clients"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	clients := ctx.Protected.Group("/clients")
	m.handler.RegisterRoutes(clients)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)

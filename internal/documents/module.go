// Package documents provides the invoices and quotations domain module.
package documents

import (
	"boekhoud_backend/internal/documents/handler"
	"boekhoud_backend/internal/documents/repository"
	"boekhoud_backend/internal/documents/service"
	apphttp "boekhoud_backend/internal/http"
	"boekhoud_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the documents domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new documents module with all dependencies wired.
// The client directory is injected so the module never imports the
// clients module directly.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, clients service.ClientDirectory) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, clients)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "documents"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	documents := ctx.Protected.Group("/documents")
	m.handler.RegisterRoutes(documents)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)

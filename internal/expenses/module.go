// Package expenses provides the expenses domain module.
package expenses

import (
	"boekhoud_backend/internal/adapters/storage"
	"boekhoud_backend/internal/expenses/handler"
	"boekhoud_backend/internal/expenses/repository"
	"boekhoud_backend/internal/expenses/service"
	apphttp "boekhoud_backend/internal/http"
	"boekhoud_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the expenses domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new expenses module. Storage may be nil when
// MinIO is not configured.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, store storage.StorageService, receiptBucket string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, receiptBucket)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "expenses"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	expenses := ctx.Protected.Group("/expenses")
	m.handler.RegisterRoutes(expenses)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)

package audit

import (
	"boekhoud_backend/internal/audit/repository"
	"boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the audit subscriber to the event bus.
type Module struct {
	subscriber *Subscriber
	repo       *repository.Repository
}

// NewModule creates the audit module and registers its subscriptions.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	sub := NewSubscriber(repo, log)
	sub.Register(bus)

	return &Module{subscriber: sub, repo: repo}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "audit"
}

// Repository exposes the audit log for read access.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// Package chat provides the conversational drafting module.
package chat

import (
	"github.com/redis/go-redis/v9"

	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/engine"
	"boekhoud_backend/internal/chat/handler"
	"boekhoud_backend/internal/chat/knowledge"
	"boekhoud_backend/internal/chat/ports"
	"boekhoud_backend/internal/chat/service"
	apphttp "boekhoud_backend/internal/http"
	"boekhoud_backend/platform/config"
	"boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"
	"boekhoud_backend/platform/validator"
)

// Module represents the chat domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	store   *draft.Store
}

// NewModule creates a new chat module with all dependencies wired. The
// creation tools are injected through ports so the engine never touches
// other modules' repositories directly.
func NewModule(
	rdb *redis.Client,
	bus *events.InMemoryBus,
	val *validator.Validator,
	log *logger.Logger,
	cfg config.ChatConfig,
	clients ports.ClientCreator,
	documents ports.DocumentDrafter,
	searcher ports.DocumentSearcher,
) (*Module, error) {
	store := draft.NewStore(rdb, cfg.GetDraftTTL())

	catalog, err := engine.LoadCatalog()
	if err != nil {
		return nil, err
	}

	base, err := knowledge.Load()
	if err != nil {
		return nil, err
	}
	kb := knowledge.NewService(base, knowledge.NewCache())

	executor := engine.NewExecutor(clients, documents)
	controller := engine.NewController(store, executor, catalog, bus, log)
	svc := service.NewService(store, controller, kb, searcher, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		store:   store,
	}, nil
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "chat"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Store exposes the draft store for the background expiry sweep.
func (m *Module) Store() *draft.Store {
	return m.store
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	chat := ctx.Protected.Group("/chat")
	m.handler.RegisterRoutes(chat)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)

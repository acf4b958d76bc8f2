// Package events re-exports the platform event bus and defines the
// application's domain events. Modules import this package; the bus
// implementation lives in platform/events.
package events

import (
	platformevents "boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"
)

// InMemoryBus is a type alias to the platform InMemoryBus.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

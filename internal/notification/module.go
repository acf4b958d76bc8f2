// Package notification delivers user-facing confirmations for records
// created through the drafting engine.
package notification

import (
	"boekhoud_backend/internal/email"
	"boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"
)

// Module wires the notification subscriber to the event bus.
type Module struct {
	subscriber *Subscriber
}

// NewModule creates the notification module and registers its
// subscriptions. Sender may be nil when email delivery is disabled; the
// subscriber then logs and skips.
func NewModule(bus events.Bus, sender email.Sender, log *logger.Logger) *Module {
	sub := NewSubscriber(sender, log)
	sub.Register(bus)

	return &Module{subscriber: sub}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "notification"
}

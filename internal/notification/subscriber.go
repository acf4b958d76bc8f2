package notification

import (
	"context"
	"fmt"

	"boekhoud_backend/internal/email"
	appevents "boekhoud_backend/internal/events"
	"boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"
)

// Subscriber emails the drafting user when a record was created.
type Subscriber struct {
	sender email.Sender
	log    *logger.Logger
}

// NewSubscriber creates a new notification subscriber.
func NewSubscriber(sender email.Sender, log *logger.Logger) *Subscriber {
	return &Subscriber{sender: sender, log: log}
}

// Register subscribes to the create-succeeded event.
func (s *Subscriber) Register(bus events.Bus) {
	bus.Subscribe(appevents.ChatCreateSucceededEvent, events.HandlerFunc(s.handleCreateSucceeded))
}

func (s *Subscriber) handleCreateSucceeded(ctx context.Context, event events.Event) error {
	e, ok := event.(appevents.ChatCreateSucceeded)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.EventName())
	}

	if e.UserEmail == "" {
		s.log.Debug("create confirmation skipped, no user email", "recordId", e.RecordID)
		return nil
	}
	if s.sender == nil {
		s.log.Debug("create confirmation skipped, email disabled", "recordId", e.RecordID)
		return nil
	}

	if err := s.sender.SendRecordCreatedEmail(ctx, e.UserEmail, e.RecordKind, e.RecordNumber, e.ClientName, e.TotalCents); err != nil {
		return fmt.Errorf("send create confirmation: %w", err)
	}

	s.log.Info("create confirmation sent",
		"recordId", e.RecordID,
		"recordKind", e.RecordKind,
		"requestId", e.RequestID,
	)
	return nil
}

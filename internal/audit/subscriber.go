// Package audit records every drafting engine event to a Postgres log,
// giving each conversation a traceable history.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"boekhoud_backend/internal/audit/repository"
	appevents "boekhoud_backend/internal/events"
	"boekhoud_backend/platform/events"
	"boekhoud_backend/platform/logger"

	"github.com/google/uuid"
)

// chatEvent is implemented by every chat event via the embedded context.
type chatEvent interface {
	events.Event
	Context() appevents.ChatContext
}

// Subscriber persists chat events as audit entries.
type Subscriber struct {
	repo *repository.Repository
	log  *logger.Logger
}

// NewSubscriber creates a new audit subscriber.
func NewSubscriber(repo *repository.Repository, log *logger.Logger) *Subscriber {
	return &Subscriber{repo: repo, log: log}
}

// Register subscribes the audit writer to all chat events.
func (s *Subscriber) Register(bus events.Bus) {
	names := []string{
		appevents.ChatDraftUpdatedEvent,
		appevents.ChatValidationFailedEvent,
		appevents.ChatDraftCancelledEvent,
		appevents.ChatCreateStartedEvent,
		appevents.ChatCreateSucceededEvent,
		appevents.ChatCreateFailedEvent,
	}
	for _, name := range names {
		bus.Subscribe(name, events.HandlerFunc(s.handle))
	}
}

func (s *Subscriber) handle(ctx context.Context, event events.Event) error {
	ce, ok := event.(chatEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.EventName())
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	ec := ce.Context()
	entry := repository.Entry{
		ID:             uuid.New(),
		RequestID:      ec.RequestID,
		ConversationID: ec.ConversationID,
		EventName:      event.EventName(),
		Intent:         ec.Intent,
		Payload:        payload,
		OccurredAt:     event.OccurredAt(),
	}
	if tenant, err := uuid.Parse(ec.TenantID); err == nil {
		entry.TenantID = &tenant
	}
	if user, err := uuid.Parse(ec.UserID); err == nil {
		entry.UserID = &user
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return err
	}

	s.log.Debug("audit entry recorded",
		"event", event.EventName(),
		"conversationId", ec.ConversationID,
		"requestId", ec.RequestID,
	)
	return nil
}

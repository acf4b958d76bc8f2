package events

import (
	platformevents "boekhoud_backend/platform/events"
)

// Event names for the conversational drafting engine. The audit module
// subscribes to all of them.
const (
	ChatDraftUpdatedEvent     = "chat.draft.updated"
	ChatValidationFailedEvent = "chat.validation.failed"
	ChatDraftCancelledEvent   = "chat.draft.cancelled"
	ChatCreateStartedEvent    = "chat.create.started"
	ChatCreateSucceededEvent  = "chat.create.succeeded"
	ChatCreateFailedEvent     = "chat.create.failed"
)

// ChatContext carries the identifying fields shared by all chat events.
type ChatContext struct {
	RequestID      string `json:"requestId"`
	UserID         string `json:"userId"`
	TenantID       string `json:"tenantId"`
	ConversationID string `json:"conversationId"`
	Intent         string `json:"intent"`
}

// Context returns the shared fields, so subscribers can read them off
// any chat event without a type switch per event.
func (c ChatContext) Context() ChatContext { return c }

// ChatDraftUpdated fires after a message was merged into a draft.
type ChatDraftUpdated struct {
	platformevents.BaseEvent
	ChatContext
	Status string `json:"status"`
}

func (e ChatDraftUpdated) EventName() string { return ChatDraftUpdatedEvent }

// ChatValidationFailed fires when a draft is incomplete or invalid and
// a follow-up question was asked.
type ChatValidationFailed struct {
	platformevents.BaseEvent
	ChatContext
	MissingFields []string `json:"missingFields,omitempty"`
	InvalidFields []string `json:"invalidFields,omitempty"`
	AskedField    string   `json:"askedField,omitempty"`
}

func (e ChatValidationFailed) EventName() string { return ChatValidationFailedEvent }

// ChatDraftCancelled fires when a draft reaches the cancelled status,
// either by user request or by TTL expiry.
type ChatDraftCancelled struct {
	platformevents.BaseEvent
	ChatContext
	Expired bool `json:"expired"`
}

func (e ChatDraftCancelled) EventName() string { return ChatDraftCancelledEvent }

// ChatCreateStarted fires when a confirmed draft is handed to the
// action executor.
type ChatCreateStarted struct {
	platformevents.BaseEvent
	ChatContext
}

func (e ChatCreateStarted) EventName() string { return ChatCreateStartedEvent }

// ChatCreateSucceeded fires exactly once per confirmed draft, after the
// record was created. The notification module uses UserEmail to send a
// confirmation.
type ChatCreateSucceeded struct {
	platformevents.BaseEvent
	ChatContext
	RecordID     string `json:"recordId"`
	RecordNumber string `json:"recordNumber,omitempty"`
	RecordKind   string `json:"recordKind"`
	ClientName   string `json:"clientName,omitempty"`
	TotalCents   int64  `json:"totalCents,omitempty"`
	UserEmail    string `json:"userEmail,omitempty"`
}

func (e ChatCreateSucceeded) EventName() string { return ChatCreateSucceededEvent }

// ChatCreateFailed fires when execution of a confirmed draft failed.
// The draft stays open so the user can retry.
type ChatCreateFailed struct {
	platformevents.BaseEvent
	ChatContext
	Reason string `json:"reason"`
}

func (e ChatCreateFailed) EventName() string { return ChatCreateFailedEvent }

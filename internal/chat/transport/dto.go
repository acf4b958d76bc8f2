// Package transport defines the request and response shapes of the chat API.
package transport

import "boekhoud_backend/internal/chat/engine"

// MessageRequest is the body of POST /chat/messages.
type MessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// RecordResponse points at a record created during the conversation.
type RecordResponse struct {
	ID     string `json:"id"`
	Number string `json:"number,omitempty"`
	Kind   string `json:"kind"`
}

// MessageResponse is the engine's answer to one message.
type MessageResponse struct {
	ConversationID string          `json:"conversationId,omitempty"`
	Intent         string          `json:"intent"`
	Status         string          `json:"status,omitempty"`
	Message        string          `json:"message"`
	Done           bool            `json:"done"`
	Record         *RecordResponse `json:"record,omitempty"`
}

// MessageResponseFrom maps an engine reply to the wire shape.
func MessageResponseFrom(r engine.Reply) MessageResponse {
	resp := MessageResponse{
		ConversationID: r.ConversationID,
		Intent:         r.Intent,
		Status:         r.Status,
		Message:        r.Message,
		Done:           r.Done,
	}
	if r.Record != nil {
		resp.Record = &RecordResponse{
			ID:     r.Record.ID,
			Number: r.Record.Number,
			Kind:   r.Record.Kind,
		}
	}
	return resp
}

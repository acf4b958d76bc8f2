// Package repository persists audit log entries.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one audit log row.
type Entry struct {
	ID             uuid.UUID
	TenantID       *uuid.UUID
	UserID         *uuid.UUID
	RequestID      string
	ConversationID string
	EventName      string
	Intent         string
	Payload        []byte
	OccurredAt     time.Time
}

// Repository writes audit entries to Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert appends one entry to the audit log.
func (r *Repository) Insert(ctx context.Context, e Entry) error {
	query := `
		INSERT INTO chat_audit_log (
			id, tenant_id, user_id, request_id, conversation_id,
			event_name, intent, payload, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.TenantID, e.UserID, e.RequestID, e.ConversationID,
		e.EventName, e.Intent, e.Payload, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByConversation returns a conversation's audit trail, oldest first.
func (r *Repository) ListByConversation(ctx context.Context, tenantID uuid.UUID, conversationID string, limit int) ([]Entry, error) {
	query := `
		SELECT id, tenant_id, user_id, request_id, conversation_id,
		       event_name, intent, payload, occurred_at
		FROM chat_audit_log
		WHERE tenant_id = $1 AND conversation_id = $2
		ORDER BY occurred_at ASC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenantID, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.UserID, &e.RequestID, &e.ConversationID,
			&e.EventName, &e.Intent, &e.Payload, &e.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

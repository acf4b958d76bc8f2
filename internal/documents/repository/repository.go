// Package repository provides database operations for invoices and
// quotations, which share one table distinguished by kind.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boekhoud_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentNotFoundMsg = "document not found"

// Document kinds.
const (
	KindInvoice   = "invoice"
	KindQuotation = "quotation"
)

// Repository provides database operations for documents.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new documents repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Document struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	UserID        uuid.UUID
	Kind          string
	Number        string
	ClientID      uuid.UUID
	ClientName    string
	Status        string
	IssueDate     time.Time
	DueDate       *time.Time
	ValidUntil    *time.Time
	SubtotalCents int64
	VATCents      int64
	TotalCents    int64
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type DocumentItem struct {
	ID             uuid.UUID
	DocumentID     uuid.UUID
	Position       int
	Description    string
	Quantity       float64
	Unit           string
	UnitPriceCents int64
	VATRatePct     int
	SubtotalCents  int64
	VATCents       int64
}

// numberPrefixes maps a document kind to its number prefix.
var numberPrefixes = map[string]string{
	KindInvoice:   "FAC",
	KindQuotation: "OFF",
}

// nextNumber increments the per-tenant counter for (kind, year) and
// formats the document number. The upsert keeps the increment atomic:
// concurrent creates serialize on the counter row, so numbers are
// unique and gap-free.
func nextNumber(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, kind string, year int) (string, error) {
	prefix, ok := numberPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown document kind %q", kind)
	}

	query := `
		INSERT INTO document_counters (tenant_id, kind, year, last_number)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, kind, year)
		DO UPDATE SET last_number = document_counters.last_number + 1
		RETURNING last_number
	`

	var lastNumber int
	if err := tx.QueryRow(ctx, query, tenantID, kind, year).Scan(&lastNumber); err != nil {
		return "", fmt.Errorf("next document number: %w", err)
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, year, lastNumber), nil
}

// CreateWithItems assigns the document number and inserts the document
// and its items in one transaction.
func (r *Repository) CreateWithItems(ctx context.Context, doc Document, items []DocumentItem) (Document, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	doc.Number, err = nextNumber(ctx, tx, doc.TenantID, doc.Kind, doc.IssueDate.Year())
	if err != nil {
		return Document{}, err
	}

	insertDoc := `
		INSERT INTO documents (
			id, tenant_id, user_id, kind, number, client_id, client_name,
			status, issue_date, due_date, valid_until,
			subtotal_cents, vat_cents, total_cents, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = tx.Exec(ctx, insertDoc,
		doc.ID, doc.TenantID, doc.UserID, doc.Kind, doc.Number,
		doc.ClientID, doc.ClientName, doc.Status, doc.IssueDate,
		doc.DueDate, doc.ValidUntil,
		doc.SubtotalCents, doc.VATCents, doc.TotalCents,
		doc.Notes, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return Document{}, fmt.Errorf("create document: %w", err)
	}

	insertItem := `
		INSERT INTO document_items (
			id, document_id, position, description, quantity, unit,
			unit_price_cents, vat_rate_pct, subtotal_cents, vat_cents
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, item := range items {
		_, err = tx.Exec(ctx, insertItem,
			item.ID, doc.ID, item.Position, item.Description,
			item.Quantity, item.Unit, item.UnitPriceCents,
			item.VATRatePct, item.SubtotalCents, item.VATCents,
		)
		if err != nil {
			return Document{}, fmt.Errorf("create document item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Document{}, fmt.Errorf("commit tx: %w", err)
	}

	return doc, nil
}

const documentColumns = `
	id, tenant_id, user_id, kind, number, client_id, client_name,
	status, issue_date, due_date, valid_until,
	subtotal_cents, vat_cents, total_cents, notes, created_at, updated_at`

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(
		&d.ID, &d.TenantID, &d.UserID, &d.Kind, &d.Number,
		&d.ClientID, &d.ClientName, &d.Status, &d.IssueDate,
		&d.DueDate, &d.ValidUntil,
		&d.SubtotalCents, &d.VATCents, &d.TotalCents,
		&d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (Document, []DocumentItem, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND tenant_id = $2`

	doc, err := scanDocument(r.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, nil, apperr.NotFound(documentNotFoundMsg)
		}
		return Document{}, nil, fmt.Errorf("get document: %w", err)
	}

	items, err := r.listItems(ctx, doc.ID)
	if err != nil {
		return Document{}, nil, err
	}

	return doc, items, nil
}

func (r *Repository) listItems(ctx context.Context, documentID uuid.UUID) ([]DocumentItem, error) {
	query := `
		SELECT id, document_id, position, description, quantity, unit,
			unit_price_cents, vat_rate_pct, subtotal_cents, vat_cents
		FROM document_items
		WHERE document_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()

	var items []DocumentItem
	for rows.Next() {
		var item DocumentItem
		err := rows.Scan(
			&item.ID, &item.DocumentID, &item.Position, &item.Description,
			&item.Quantity, &item.Unit, &item.UnitPriceCents,
			&item.VATRatePct, &item.SubtotalCents, &item.VATCents,
		)
		if err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListRecent returns the tenant's newest documents, optionally filtered
// by kind.
func (r *Repository) ListRecent(ctx context.Context, tenantID uuid.UUID, kind string, limit int) ([]Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE tenant_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, tenantID, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// UpdateStatus moves a document to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id, tenantID uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET status = $3, updated_at = now() WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, status)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(documentNotFoundMsg)
	}
	return nil
}

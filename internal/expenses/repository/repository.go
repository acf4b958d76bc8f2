// Package repository provides database operations for expenses.
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

const expenseNotFoundMsg = "expense not found"

// Repository provides database operations for expenses.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new expenses repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Expense struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	UserID         uuid.UUID
	Category       string
	Description    string
	Vendor         *string
	AmountCents    int64
	VATRatePct     int
	ExpenseDate    time.Time
	PaymentMethod  *string
	ReceiptFileKey *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const expenseColumns = `
	id, tenant_id, user_id, category, description, vendor,
	amount_cents, vat_rate_pct, expense_date, payment_method,
	receipt_file_key, created_at, updated_at`

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	err := row.Scan(
		&e.ID, &e.TenantID, &e.UserID, &e.Category, &e.Description,
		&e.Vendor, &e.AmountCents, &e.VATRatePct, &e.ExpenseDate,
		&e.PaymentMethod, &e.ReceiptFileKey, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *Repository) Create(ctx context.Context, expense Expense) (Expense, error) {
	query := `
		INSERT INTO expenses (
			id, tenant_id, user_id, category, description, vendor,
			amount_cents, vat_rate_pct, expense_date, payment_method,
			receipt_file_key, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID, expense.TenantID, expense.UserID, expense.Category,
		expense.Description, expense.Vendor, expense.AmountCents,
		expense.VATRatePct, expense.ExpenseDate, expense.PaymentMethod,
		expense.ReceiptFileKey, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return Expense{}, fmt.Errorf("create expense: %w", err)
	}

	return expense, nil
}

func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND tenant_id = $2`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, apperr.NotFound(expenseNotFoundMsg)
		}
		return Expense{}, fmt.Errorf("get expense: %w", err)
	}

	return expense, nil
}

func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE tenant_id = $1
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// SetReceiptFileKey attaches an uploaded receipt to the expense.
func (r *Repository) SetReceiptFileKey(ctx context.Context, id, tenantID uuid.UUID, fileKey string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses SET receipt_file_key = $3, updated_at = now() WHERE id = $1 AND tenant_id = $2`,
		id, tenantID, fileKey)
	if err != nil {
		return fmt.Errorf("set receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(expenseNotFoundMsg)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(expenseNotFoundMsg)
	}
	return nil
}

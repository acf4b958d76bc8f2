// Package repository provides database operations for clients.
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

const clientNotFoundMsg = "client not found"

// Repository provides database operations for clients.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Client struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	Email      *string
	Phone      *string
	Address    *string
	PostalCode *string
	City       *string
	KvkNumber  *string
	BtwID      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const clientColumns = `
	id, tenant_id, name, email, phone, address, postal_code, city,
	kvk_number, btw_id, created_at, updated_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.PostalCode,
		&c.City,
		&c.KvkNumber,
		&c.BtwID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *Repository) Create(ctx context.Context, client Client) (Client, error) {
	query := `
		INSERT INTO clients (
			id, tenant_id, name, email, phone, address, postal_code, city,
			kvk_number, btw_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		client.ID,
		client.TenantID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.PostalCode,
		client.City,
		client.KvkNumber,
		client.BtwID,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return Client{}, fmt.Errorf("create client: %w", err)
	}

	return client, nil
}

func (r *Repository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND tenant_id = $2`

	client, err := scanClient(r.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMsg)
		}
		return Client{}, fmt.Errorf("get client: %w", err)
	}

	return client, nil
}

// FindByNameOrEmail matches a client case-insensitively on exact name
// or email, for the create-if-missing short circuit.
func (r *Repository) FindByNameOrEmail(ctx context.Context, tenantID uuid.UUID, name, email string) (Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE tenant_id = $1
		  AND (lower(name) = lower($2) OR ($3 <> '' AND lower(email) = lower($3)))
		ORDER BY created_at
		LIMIT 1
	`

	client, err := scanClient(r.pool.QueryRow(ctx, query, tenantID, name, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMsg)
		}
		return Client{}, fmt.Errorf("find client: %w", err)
	}

	return client, nil
}

// FindByNameLike resolves a client by case-insensitive substring match,
// used when a chat message mentions a client by a partial name.
func (r *Repository) FindByNameLike(ctx context.Context, tenantID uuid.UUID, name string) (Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE tenant_id = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY length(name)
		LIMIT 1
	`

	client, err := scanClient(r.pool.QueryRow(ctx, query, tenantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMsg)
		}
		return Client{}, fmt.Errorf("find client: %w", err)
	}

	return client, nil
}

func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMsg)
	}
	return nil
}

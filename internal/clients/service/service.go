// Package service contains the clients business logic.
package service

import (
	"context"
	"strings"
	"time"

	"boekhoud_backend/internal/clients/repository"
	"boekhoud_backend/platform/apperr"
	"boekhoud_backend/platform/phone"

	"github.com/google/uuid"
)

// Service provides client operations.
type Service struct {
	repo *repository.Repository
}

// New creates a new clients service.
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields for a new client.
type CreateInput struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	PostalCode string
	City       string
	KvkNumber  string
	BtwID      string
}

// CreateResult reports the created or matched client.
type CreateResult struct {
	Client         repository.Client
	AlreadyExisted bool
}

// CreateIfMissing creates the client unless one with the same name or
// email already exists for the tenant, in which case the existing
// client is returned unchanged.
func (s *Service) CreateIfMissing(ctx context.Context, tenantID uuid.UUID, in CreateInput) (CreateResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CreateResult{}, apperr.Validation("client name is required")
	}

	existing, err := s.repo.FindByNameOrEmail(ctx, tenantID, name, strings.TrimSpace(in.Email))
	if err == nil {
		return CreateResult{Client: existing, AlreadyExisted: true}, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return CreateResult{}, err
	}

	now := time.Now()
	client := repository.Client{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Name:       name,
		Email:      optional(in.Email),
		Address:    optional(in.Address),
		PostalCode: optional(in.PostalCode),
		City:       optional(in.City),
		KvkNumber:  optional(in.KvkNumber),
		BtwID:      optional(in.BtwID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if raw := strings.TrimSpace(in.Phone); raw != "" {
		normalized := phone.NormalizeE164(raw)
		client.Phone = &normalized
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return CreateResult{}, err
	}

	return CreateResult{Client: created}, nil
}

// ResolveByName finds a client by case-insensitive substring match.
func (s *Service) ResolveByName(ctx context.Context, tenantID uuid.UUID, name string) (repository.Client, error) {
	return s.repo.FindByNameLike(ctx, tenantID, strings.TrimSpace(name))
}

// GetByID returns a single client.
func (s *Service) GetByID(ctx context.Context, id, tenantID uuid.UUID) (repository.Client, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

// List returns a page of the tenant's clients.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]repository.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, tenantID, limit, offset)
}

// Delete removes a client.
func (s *Service) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	return s.repo.Delete(ctx, id, tenantID)
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

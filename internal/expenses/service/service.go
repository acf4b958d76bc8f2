// Package service contains the expenses business logic, including
// presigned receipt uploads.
package service

import (
	"context"
	"strings"
	"time"

	"boekhoud_backend/internal/adapters/storage"
	"boekhoud_backend/internal/expenses/repository"
	"boekhoud_backend/platform/apperr"

	"github.com/google/uuid"
)

// Service provides expense operations.
type Service struct {
	repo          *repository.Repository
	storage       storage.StorageService
	receiptBucket string
}

// New creates a new expenses service. Storage may be nil when MinIO is
// not configured; receipt endpoints then report a validation error.
func New(repo *repository.Repository, store storage.StorageService, receiptBucket string) *Service {
	return &Service{repo: repo, storage: store, receiptBucket: receiptBucket}
}

// CreateInput carries the fields for a new expense.
type CreateInput struct {
	Category      string
	Description   string
	Vendor        string
	AmountCents   int64
	VATRatePct    int
	ExpenseDate   time.Time
	PaymentMethod string
}

// Create records a new expense.
func (s *Service) Create(ctx context.Context, tenantID, userID uuid.UUID, in CreateInput) (repository.Expense, error) {
	if in.AmountCents <= 0 {
		return repository.Expense{}, apperr.Validation("amount must be positive")
	}

	now := time.Now()
	expense := repository.Expense{
		ID:          uuid.New(),
		TenantID:    tenantID,
		UserID:      userID,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		AmountCents: in.AmountCents,
		VATRatePct:  in.VATRatePct,
		ExpenseDate: in.ExpenseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if vendor := strings.TrimSpace(in.Vendor); vendor != "" {
		expense.Vendor = &vendor
	}
	if method := strings.TrimSpace(in.PaymentMethod); method != "" {
		expense.PaymentMethod = &method
	}

	return s.repo.Create(ctx, expense)
}

// GetByID returns a single expense.
func (s *Service) GetByID(ctx context.Context, id, tenantID uuid.UUID) (repository.Expense, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

// List returns a page of the tenant's expenses.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]repository.Expense, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, tenantID, limit, offset)
}

// Delete removes an expense and its stored receipt, if any.
func (s *Service) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	expense, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if expense.ReceiptFileKey != nil && s.storage != nil {
		_ = s.storage.DeleteObject(ctx, s.receiptBucket, *expense.ReceiptFileKey)
	}
	return s.repo.Delete(ctx, id, tenantID)
}

// PresignReceiptUpload returns a presigned PUT URL for the expense's
// receipt and records the resulting file key.
func (s *Service) PresignReceiptUpload(ctx context.Context, id, tenantID uuid.UUID, fileName, contentType string) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, apperr.Validation("receipt storage is not configured")
	}

	expense, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	folder := tenantID.String() + "/" + expense.ID.String()
	presigned, err := s.storage.GenerateUploadURL(ctx, s.receiptBucket, folder, fileName, contentType)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "could not presign receipt upload", err)
	}

	if err := s.repo.SetReceiptFileKey(ctx, id, tenantID, presigned.FileKey); err != nil {
		return nil, err
	}

	return presigned, nil
}

// ReceiptDownloadURL returns a presigned GET URL for the stored receipt.
func (s *Service) ReceiptDownloadURL(ctx context.Context, id, tenantID uuid.UUID) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, apperr.Validation("receipt storage is not configured")
	}

	expense, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if expense.ReceiptFileKey == nil {
		return nil, apperr.NotFound("expense has no receipt")
	}

	return s.storage.GenerateDownloadURL(ctx, s.receiptBucket, *expense.ReceiptFileKey)
}

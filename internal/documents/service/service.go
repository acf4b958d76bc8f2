// Package service contains the documents business logic: client
// resolution, totals calculation, numbering and persistence.
package service

import (
	"context"
	"strings"
	"time"

	"boekhoud_backend/internal/documents/repository"
	"boekhoud_backend/platform/apperr"

	"github.com/google/uuid"
)

// Default payment and validity terms in days.
const (
	defaultDueDays   = 14
	defaultValidDays = 30
)

// Document statuses.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusPaid     = "paid"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ClientRef identifies a resolved client.
type ClientRef struct {
	ID   uuid.UUID
	Name string
}

// ClientDirectory resolves and creates clients for document drafting.
// The clients module implements it via an adapter.
type ClientDirectory interface {
	ResolveByName(ctx context.Context, tenantID uuid.UUID, name string) (ClientRef, error)
	EnsureClient(ctx context.Context, tenantID uuid.UUID, name string) (ClientRef, error)
}

// Service provides document operations.
type Service struct {
	repo    *repository.Repository
	clients ClientDirectory
}

// New creates a new documents service.
func New(repo *repository.Repository, clients ClientDirectory) *Service {
	return &Service{repo: repo, clients: clients}
}

// DraftInput carries everything needed to draft a document.
type DraftInput struct {
	Kind                  string
	ClientName            string
	Lines                 []CalcLine
	IssueDate             *time.Time
	DueInDays             *int
	ValidForDays          *int
	Notes                 string
	CreateClientIfMissing bool
}

// DraftResult is the created document, or the signal that the client
// must be created first.
type DraftResult struct {
	Document            repository.Document
	NeedsClientCreation bool
}

// DraftDocument resolves the client, computes totals, assigns the next
// document number and persists the document with its items. When the
// client is unknown and CreateClientIfMissing is false, nothing is
// written and NeedsClientCreation is reported instead.
func (s *Service) DraftDocument(ctx context.Context, tenantID, userID uuid.UUID, in DraftInput) (DraftResult, error) {
	if in.Kind != repository.KindInvoice && in.Kind != repository.KindQuotation {
		return DraftResult{}, apperr.Validation("unknown document kind")
	}
	if len(in.Lines) == 0 {
		return DraftResult{}, apperr.Validation("document needs at least one line")
	}
	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		return DraftResult{}, apperr.Validation("client name is required")
	}

	ref, err := s.clients.ResolveByName(ctx, tenantID, clientName)
	if apperr.Is(err, apperr.KindNotFound) {
		if !in.CreateClientIfMissing {
			return DraftResult{NeedsClientCreation: true}, nil
		}
		ref, err = s.clients.EnsureClient(ctx, tenantID, clientName)
	}
	if err != nil {
		return DraftResult{}, err
	}

	totals := Calculate(in.Lines)

	now := time.Now()
	issueDate := startOfDay(now)
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}

	doc := repository.Document{
		ID:            uuid.New(),
		TenantID:      tenantID,
		UserID:        userID,
		Kind:          in.Kind,
		ClientID:      ref.ID,
		ClientName:    ref.Name,
		Status:        StatusDraft,
		IssueDate:     issueDate,
		SubtotalCents: totals.SubtotalCents,
		VATCents:      totals.VATCents,
		TotalCents:    totals.TotalCents,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		doc.Notes = &notes
	}

	switch in.Kind {
	case repository.KindInvoice:
		days := defaultDueDays
		if in.DueInDays != nil {
			days = *in.DueInDays
		}
		due := issueDate.AddDate(0, 0, days)
		doc.DueDate = &due
	case repository.KindQuotation:
		days := defaultValidDays
		if in.ValidForDays != nil {
			days = *in.ValidForDays
		}
		validUntil := issueDate.AddDate(0, 0, days)
		doc.ValidUntil = &validUntil
	}

	items := make([]repository.DocumentItem, 0, len(in.Lines))
	for i, line := range in.Lines {
		items = append(items, repository.DocumentItem{
			ID:             uuid.New(),
			DocumentID:     doc.ID,
			Position:       i + 1,
			Description:    line.Description,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			UnitPriceCents: totals.Lines[i].UnitPriceCents,
			VATRatePct:     line.VATRatePct,
			SubtotalCents:  totals.Lines[i].SubtotalCents,
			VATCents:       totals.Lines[i].VATCents,
		})
	}

	created, err := s.repo.CreateWithItems(ctx, doc, items)
	if err != nil {
		return DraftResult{}, err
	}

	return DraftResult{Document: created}, nil
}

// startOfDay returns midnight in t's own location, so the issue date
// stays on the local calendar day instead of the UTC one.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GetByID returns a document with its items.
func (s *Service) GetByID(ctx context.Context, id, tenantID uuid.UUID) (repository.Document, []repository.DocumentItem, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

// ListRecent returns the tenant's newest documents.
func (s *Service) ListRecent(ctx context.Context, tenantID uuid.UUID, kind string, limit int) ([]repository.Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, tenantID, kind, limit)
}

// UpdateStatus moves a document to a new status.
func (s *Service) UpdateStatus(ctx context.Context, id, tenantID uuid.UUID, status string) error {
	switch status {
	case StatusDraft, StatusSent, StatusPaid, StatusAccepted, StatusRejected:
	default:
		return apperr.Validation("unknown document status")
	}
	return s.repo.UpdateStatus(ctx, id, tenantID, status)
}

package adapters

import (
	"context"
	"fmt"
	"strconv"

	"boekhoud_backend/internal/chat/ports"
	docsvc "boekhoud_backend/internal/documents/service"

	"github.com/google/uuid"
)

// ChatDocumentDrafter adapts the documents service to the drafting
// engine's DocumentDrafter and DocumentSearcher ports.
type ChatDocumentDrafter struct {
	documents *docsvc.Service
}

// NewChatDocumentDrafter creates a new document drafter adapter.
func NewChatDocumentDrafter(documents *docsvc.Service) *ChatDocumentDrafter {
	return &ChatDocumentDrafter{documents: documents}
}

// DraftDocument creates an invoice or quotation from collected fields.
func (a *ChatDocumentDrafter) DraftDocument(ctx context.Context, tenantID, userID string, in ports.DocumentInput) (ports.DocumentResult, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return ports.DocumentResult{}, fmt.Errorf("parse tenant id: %w", err)
	}
	user, err := uuid.Parse(userID)
	if err != nil {
		return ports.DocumentResult{}, fmt.Errorf("parse user id: %w", err)
	}

	lines := make([]docsvc.CalcLine, 0, len(in.Lines))
	for _, line := range in.Lines {
		lines = append(lines, docsvc.CalcLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			Price:       line.Price,
			VATRatePct:  vatRatePct(line.VATRate),
		})
	}

	result, err := a.documents.DraftDocument(ctx, tenant, user, docsvc.DraftInput{
		Kind:                  in.Kind,
		ClientName:            in.ClientName,
		Lines:                 lines,
		IssueDate:             in.IssueDate,
		DueInDays:             in.DueInDays,
		ValidForDays:          in.ValidForDays,
		Notes:                 in.Notes,
		CreateClientIfMissing: in.CreateClientIfMissing,
	})
	if err != nil {
		return ports.DocumentResult{}, err
	}
	if result.NeedsClientCreation {
		return ports.DocumentResult{NeedsClientCreation: true}, nil
	}

	doc := result.Document
	return ports.DocumentResult{
		ID:            doc.ID.String(),
		Number:        doc.Number,
		ClientID:      doc.ClientID.String(),
		ClientName:    doc.ClientName,
		SubtotalCents: doc.SubtotalCents,
		VATCents:      doc.VATCents,
		TotalCents:    doc.TotalCents,
	}, nil
}

// RecentDocuments returns the tenant's newest documents for listing
// answers. An empty kind means both invoices and quotations.
func (a *ChatDocumentDrafter) RecentDocuments(ctx context.Context, tenantID, kind string, limit int) ([]ports.DocumentSummary, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, fmt.Errorf("parse tenant id: %w", err)
	}

	docs, err := a.documents.ListRecent(ctx, tenant, kind, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, ports.DocumentSummary{
			Number:     doc.Number,
			Kind:       doc.Kind,
			ClientName: doc.ClientName,
			TotalCents: doc.TotalCents,
			IssueDate:  doc.IssueDate,
			Status:     doc.Status,
		})
	}
	return summaries, nil
}

// vatRatePct parses a bucketed rate string. Unparseable input falls back
// to the high rate, matching the extraction default.
func vatRatePct(rate string) int {
	pct, err := strconv.Atoi(rate)
	if err != nil {
		return 21
	}
	return pct
}

// Compile-time checks against the engine ports.
var (
	_ ports.DocumentDrafter  = (*ChatDocumentDrafter)(nil)
	_ ports.DocumentSearcher = (*ChatDocumentDrafter)(nil)
)

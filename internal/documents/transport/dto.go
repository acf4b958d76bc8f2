// Package transport defines the request and response shapes of the documents API.
package transport

import (
	"time"

	"boekhoud_backend/internal/documents/repository"
)

// DocumentLineRequest is the input for a single line item.
type DocumentLineRequest struct {
	Description string  `json:"description" validate:"required,min=1,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit" validate:"omitempty,oneof=STUK UUR STOP KM PROJECT LICENTIE"`
	Price       float64 `json:"price" validate:"gte=0"`
	VATRatePct  int     `json:"vatRatePct" validate:"oneof=21 9 0"`
}

// CreateDocumentRequest is the body for creating an invoice or quotation.
type CreateDocumentRequest struct {
	Kind                  string                `json:"kind" validate:"required,oneof=invoice quotation"`
	ClientName            string                `json:"clientName" validate:"required,min=1,max=200"`
	Lines                 []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
	IssueDate             *time.Time            `json:"issueDate,omitempty"`
	DueInDays             *int                  `json:"dueInDays,omitempty" validate:"omitempty,gt=0"`
	ValidForDays          *int                  `json:"validForDays,omitempty" validate:"omitempty,gt=0"`
	Notes                 string                `json:"notes" validate:"omitempty,max=2000"`
	CreateClientIfMissing bool                  `json:"createClientIfMissing"`
}

// UpdateStatusRequest is the body for a status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid accepted rejected"`
}

// DocumentItemResponse is the wire shape of one line item.
type DocumentItemResponse struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	UnitPriceCents int64   `json:"unitPriceCents"`
	VATRatePct     int     `json:"vatRatePct"`
	SubtotalCents  int64   `json:"subtotalCents"`
	VATCents       int64   `json:"vatCents"`
}

// DocumentResponse is the wire shape of one document.
type DocumentResponse struct {
	ID            string                 `json:"id"`
	Kind          string                 `json:"kind"`
	Number        string                 `json:"number"`
	ClientID      string                 `json:"clientId"`
	ClientName    string                 `json:"clientName"`
	Status        string                 `json:"status"`
	IssueDate     time.Time              `json:"issueDate"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	ValidUntil    *time.Time             `json:"validUntil,omitempty"`
	SubtotalCents int64                  `json:"subtotalCents"`
	VATCents      int64                  `json:"vatCents"`
	TotalCents    int64                  `json:"totalCents"`
	Notes         string                 `json:"notes,omitempty"`
	Items         []DocumentItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// DocumentResponseFrom maps a repository document to the wire shape.
func DocumentResponseFrom(doc repository.Document, items []repository.DocumentItem) DocumentResponse {
	resp := DocumentResponse{
		ID:            doc.ID.String(),
		Kind:          doc.Kind,
		Number:        doc.Number,
		ClientID:      doc.ClientID.String(),
		ClientName:    doc.ClientName,
		Status:        doc.Status,
		IssueDate:     doc.IssueDate,
		DueDate:       doc.DueDate,
		ValidUntil:    doc.ValidUntil,
		SubtotalCents: doc.SubtotalCents,
		VATCents:      doc.VATCents,
		TotalCents:    doc.TotalCents,
		CreatedAt:     doc.CreatedAt,
	}
	if doc.Notes != nil {
		resp.Notes = *doc.Notes
	}
	for _, item := range items {
		resp.Items = append(resp.Items, DocumentItemResponse{
			Description:    item.Description,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			UnitPriceCents: item.UnitPriceCents,
			VATRatePct:     item.VATRatePct,
			SubtotalCents:  item.SubtotalCents,
			VATCents:       item.VATCents,
		})
	}
	return resp
}

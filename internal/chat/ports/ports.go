// Package ports declares the interfaces the drafting engine needs from
// the rest of the application. The creation modules implement them via
// thin adapters, keeping the engine free of repository imports.
package ports

import (
	"context"
	"time"
)

// Document kinds the engine can draft.
const (
	KindInvoice   = "invoice"
	KindQuotation = "quotation"
)

// ClientInput carries the collected fields for a new client.
type ClientInput struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	PostalCode string
	City       string
	KvkNumber  string
	BtwID      string
}

// ClientResult reports the created or matched client.
type ClientResult struct {
	ID             string
	Name           string
	AlreadyExisted bool
}

// ClientCreator creates clients, short-circuiting when a client with
// the same name or email already exists for the tenant.
type ClientCreator interface {
	CreateIfMissing(ctx context.Context, tenantID string, in ClientInput) (ClientResult, error)
}

// DocumentLine is one billable row of a document to be drafted.
type DocumentLine struct {
	Description string
	Quantity    float64
	Unit        string
	Price       float64
	VATRate     string
}

// DocumentInput carries everything needed to draft an invoice or
// quotation. When CreateClientIfMissing is false and the client name
// does not resolve, the drafter reports NeedsClientCreation instead of
// creating anything.
type DocumentInput struct {
	Kind                  string
	ClientName            string
	Lines                 []DocumentLine
	IssueDate             *time.Time
	DueInDays             *int
	ValidForDays          *int
	Notes                 string
	CreateClientIfMissing bool
}

// DocumentResult reports the drafted document, or that the client must
// be created first.
type DocumentResult struct {
	ID                  string
	Number              string
	ClientID            string
	ClientName          string
	SubtotalCents       int64
	VATCents            int64
	TotalCents          int64
	NeedsClientCreation bool
}

// DocumentDrafter creates invoices and quotations.
type DocumentDrafter interface {
	DraftDocument(ctx context.Context, tenantID, userID string, in DocumentInput) (DocumentResult, error)
}

// DocumentSummary is a row in a listing answer.
type DocumentSummary struct {
	Number     string
	Kind       string
	ClientName string
	TotalCents int64
	IssueDate  time.Time
	Status     string
}

// DocumentSearcher answers listing queries over existing documents.
type DocumentSearcher interface {
	RecentDocuments(ctx context.Context, tenantID, kind string, limit int) ([]DocumentSummary, error)
}

// Package draft holds the multi-turn draft model of the drafting engine
// and its Redis-backed store. A draft is the partially filled record of
// one create intent for one user; at most one draft per (user, intent)
// pair is active at any time.
package draft

import (
	"time"

	"github.com/google/uuid"

	"boekhoud_backend/internal/chat/extract"
	"boekhoud_backend/internal/chat/intent"
)

// Status is the lifecycle state of a draft.
type Status string

const (
	StatusCollecting Status = "collecting"
	StatusValidating Status = "validating"
	StatusPreviewing Status = "previewing"
	StatusConfirmed  Status = "confirmed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether the draft can no longer change.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// ClientFields are the fields collected for a new client record.
type ClientFields struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	KvkNumber  string `json:"kvkNumber,omitempty"`
	BtwID      string `json:"btwId,omitempty"`
}

// DocumentFields are the fields collected for an invoice or quotation.
// Amount is the fallback total when no line items were given.
type DocumentFields struct {
	ClientName   string             `json:"clientName,omitempty"`
	Items        []extract.LineItem `json:"items,omitempty"`
	Amount       *float64           `json:"amount,omitempty"`
	VATRate      string             `json:"vatRate,omitempty"`
	IssueDate    *time.Time         `json:"issueDate,omitempty"`
	DueInDays    *int               `json:"dueInDays,omitempty"`
	ValidForDays *int               `json:"validForDays,omitempty"`
	Notes        string             `json:"notes,omitempty"`
}

// Draft is the conversational state for one in-progress create action.
type Draft struct {
	ConversationID string          `json:"conversationId"`
	UserID         string          `json:"userId"`
	TenantID       string          `json:"tenantId"`
	Intent         intent.Intent   `json:"intent"`
	Status         Status          `json:"status"`
	Client         *ClientFields   `json:"client,omitempty"`
	Document       *DocumentFields `json:"document,omitempty"`
	// PendingClientCreation marks that execution stopped because the
	// document's client does not exist yet and the user has been asked
	// whether to create it.
	PendingClientCreation bool `json:"pendingClientCreation,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// New starts a fresh collecting draft with its own conversation ID.
func New(userID, tenantID string, it intent.Intent, now time.Time) *Draft {
	d := &Draft{
		ConversationID: uuid.NewString(),
		UserID:         userID,
		TenantID:       tenantID,
		Intent:         it,
		Status:         StatusCollecting,
		CreatedAt:      now,
		LastUpdated:    now,
	}
	if it == intent.CreateClient {
		d.Client = &ClientFields{}
	} else {
		d.Document = &DocumentFields{}
	}
	return d
}

// Merge folds newly extracted fields into the draft. A field is only
// taken when the draft does not have it yet; what the user said earlier
// in the conversation is never overwritten by a later message.
func (d *Draft) Merge(update *Draft, now time.Time) {
	if update.Client != nil {
		if d.Client == nil {
			d.Client = &ClientFields{}
		}
		mergeClient(d.Client, update.Client)
	}
	if update.Document != nil {
		if d.Document == nil {
			d.Document = &DocumentFields{}
		}
		mergeDocument(d.Document, update.Document)
	}
	d.LastUpdated = now
}

func mergeClient(dst, src *ClientFields) {
	fillString(&dst.Name, src.Name)
	fillString(&dst.Email, src.Email)
	fillString(&dst.Phone, src.Phone)
	fillString(&dst.Address, src.Address)
	fillString(&dst.PostalCode, src.PostalCode)
	fillString(&dst.City, src.City)
	fillString(&dst.KvkNumber, src.KvkNumber)
	fillString(&dst.BtwID, src.BtwID)
}

func mergeDocument(dst, src *DocumentFields) {
	fillString(&dst.ClientName, src.ClientName)
	fillString(&dst.VATRate, src.VATRate)
	fillString(&dst.Notes, src.Notes)
	if len(dst.Items) == 0 && len(src.Items) > 0 {
		dst.Items = src.Items
	}
	if dst.Amount == nil && src.Amount != nil {
		dst.Amount = src.Amount
	}
	if dst.IssueDate == nil && src.IssueDate != nil {
		dst.IssueDate = src.IssueDate
	}
	if dst.DueInDays == nil && src.DueInDays != nil {
		dst.DueInDays = src.DueInDays
	}
	if dst.ValidForDays == nil && src.ValidForDays != nil {
		dst.ValidForDays = src.ValidForDays
	}
}

func fillString(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

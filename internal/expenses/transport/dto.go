// Package transport defines the request and response shapes of the expenses API.
package transport

import (
	"time"

	"boekhoud_backend/internal/expenses/repository"
)

// CreateExpenseRequest is the body for recording an expense.
type CreateExpenseRequest struct {
	Category      string    `json:"category" validate:"required,min=1,max=100"`
	Description   string    `json:"description" validate:"required,min=1,max=500"`
	Vendor        string    `json:"vendor" validate:"omitempty,max=200"`
	AmountCents   int64     `json:"amountCents" validate:"required,gt=0"`
	VATRatePct    int       `json:"vatRatePct" validate:"oneof=21 9 0"`
	ExpenseDate   time.Time `json:"expenseDate" validate:"required"`
	PaymentMethod string    `json:"paymentMethod" validate:"omitempty,oneof=bank cash card private"`
}

// PresignReceiptRequest is the body for requesting a receipt upload URL.
type PresignReceiptRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=300"`
	ContentType string `json:"contentType" validate:"required,max=100"`
}

// ExpenseResponse is the wire shape of one expense.
type ExpenseResponse struct {
	ID            string    `json:"id"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Vendor        string    `json:"vendor,omitempty"`
	AmountCents   int64     `json:"amountCents"`
	VATRatePct    int       `json:"vatRatePct"`
	ExpenseDate   time.Time `json:"expenseDate"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	HasReceipt    bool      `json:"hasReceipt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ExpenseResponseFrom maps a repository expense to the wire shape.
func ExpenseResponseFrom(e repository.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Description: e.Description,
		AmountCents: e.AmountCents,
		VATRatePct:  e.VATRatePct,
		ExpenseDate: e.ExpenseDate,
		HasReceipt:  e.ReceiptFileKey != nil,
		CreatedAt:   e.CreatedAt,
	}
	if e.Vendor != nil {
		resp.Vendor = *e.Vendor
	}
	if e.PaymentMethod != nil {
		resp.PaymentMethod = *e.PaymentMethod
	}
	return resp
}

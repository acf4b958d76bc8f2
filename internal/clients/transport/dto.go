// Package transport defines the request and response shapes of the clients API.
package transport

import (
	"time"

	"boekhoud_backend/internal/clients/repository"
)

// CreateClientRequest is the body for creating a client.
type CreateClientRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Address    string `json:"address" validate:"omitempty,max=300"`
	PostalCode string `json:"postalCode" validate:"omitempty,max=10"`
	City       string `json:"city" validate:"omitempty,max=100"`
	KvkNumber  string `json:"kvkNumber" validate:"omitempty,len=8,numeric"`
	BtwID      string `json:"btwId" validate:"omitempty,max=20"`
}

// ClientResponse is the wire shape of one client.
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	PostalCode     string    `json:"postalCode,omitempty"`
	City           string    `json:"city,omitempty"`
	KvkNumber      string    `json:"kvkNumber,omitempty"`
	BtwID          string    `json:"btwId,omitempty"`
	AlreadyExisted bool      `json:"alreadyExisted,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ClientResponseFrom maps a repository client to the wire shape.
func ClientResponseFrom(c repository.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Email:      deref(c.Email),
		Phone:      deref(c.Phone),
		Address:    deref(c.Address),
		PostalCode: deref(c.PostalCode),
		City:       deref(c.City),
		KvkNumber:  deref(c.KvkNumber),
		BtwID:      deref(c.BtwID),
		CreatedAt:  c.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

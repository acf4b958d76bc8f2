package adapters

import (
	"context"
	"fmt"

	"boekhoud_backend/internal/chat/ports"
	clientsvc "boekhoud_backend/internal/clients/service"

	"github.com/google/uuid"
)

// ChatClientCreator adapts the clients service to the drafting engine's
// ClientCreator port. The engine works with string IDs; the adapter owns
// the UUID parsing.
type ChatClientCreator struct {
	clients *clientsvc.Service
}

// NewChatClientCreator creates a new client creator adapter.
func NewChatClientCreator(clients *clientsvc.Service) *ChatClientCreator {
	return &ChatClientCreator{clients: clients}
}

// CreateIfMissing creates the client unless one with the same name or
// email already exists for the tenant.
func (a *ChatClientCreator) CreateIfMissing(ctx context.Context, tenantID string, in ports.ClientInput) (ports.ClientResult, error) {
	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return ports.ClientResult{}, fmt.Errorf("parse tenant id: %w", err)
	}

	result, err := a.clients.CreateIfMissing(ctx, tenant, clientsvc.CreateInput{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		PostalCode: in.PostalCode,
		City:       in.City,
		KvkNumber:  in.KvkNumber,
		BtwID:      in.BtwID,
	})
	if err != nil {
		return ports.ClientResult{}, err
	}

	return ports.ClientResult{
		ID:             result.Client.ID.String(),
		Name:           result.Client.Name,
		AlreadyExisted: result.AlreadyExisted,
	}, nil
}

// Compile-time check that ChatClientCreator implements ports.ClientCreator.
var _ ports.ClientCreator = (*ChatClientCreator)(nil)

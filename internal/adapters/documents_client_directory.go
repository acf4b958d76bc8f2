package adapters

import (
	"context"

	clientsvc "boekhoud_backend/internal/clients/service"
	docsvc "boekhoud_backend/internal/documents/service"

	"github.com/google/uuid"
)

// DocumentsClientDirectory adapts the clients service to the documents
// service's ClientDirectory, so drafting can resolve and create clients
// without importing the clients repository.
type DocumentsClientDirectory struct {
	clients *clientsvc.Service
}

// NewDocumentsClientDirectory creates a new client directory adapter.
func NewDocumentsClientDirectory(clients *clientsvc.Service) *DocumentsClientDirectory {
	return &DocumentsClientDirectory{clients: clients}
}

// ResolveByName finds a client by case-insensitive substring match.
func (a *DocumentsClientDirectory) ResolveByName(ctx context.Context, tenantID uuid.UUID, name string) (docsvc.ClientRef, error) {
	client, err := a.clients.ResolveByName(ctx, tenantID, name)
	if err != nil {
		return docsvc.ClientRef{}, err
	}
	return docsvc.ClientRef{ID: client.ID, Name: client.Name}, nil
}

// EnsureClient creates the client when it does not exist yet.
func (a *DocumentsClientDirectory) EnsureClient(ctx context.Context, tenantID uuid.UUID, name string) (docsvc.ClientRef, error) {
	result, err := a.clients.CreateIfMissing(ctx, tenantID, clientsvc.CreateInput{Name: name})
	if err != nil {
		return docsvc.ClientRef{}, err
	}
	return docsvc.ClientRef{ID: result.Client.ID, Name: result.Client.Name}, nil
}

// Compile-time check that DocumentsClientDirectory implements documents/service.ClientDirectory.
var _ docsvc.ClientDirectory = (*DocumentsClientDirectory)(nil)

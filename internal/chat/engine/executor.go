package engine

import (
	"context"
	"fmt"

	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/extract"
	"boekhoud_backend/internal/chat/intent"
	"boekhoud_backend/internal/chat/ports"
)

// ExecutionResult is the outcome of running a confirmed draft against
// the creation tools.
type ExecutionResult struct {
	Message             string
	NeedsClientCreation bool
	RecordID            string
	RecordNumber        string
	RecordKind          string
	ClientName          string
	TotalCents          int64
}

// Executor turns a confirmed draft into a real record via the ports.
type Executor struct {
	clients   ports.ClientCreator
	documents ports.DocumentDrafter
}

func NewExecutor(clients ports.ClientCreator, documents ports.DocumentDrafter) *Executor {
	return &Executor{clients: clients, documents: documents}
}

// Execute dispatches on the draft's intent. Infrastructure failures come
// back as errors; domain outcomes (including needsClientCreation) are
// expressed in the result.
func (e *Executor) Execute(ctx context.Context, d *draft.Draft) (ExecutionResult, error) {
	switch d.Intent {
	case intent.CreateClient:
		return e.createClient(ctx, d)
	case intent.CreateFactuur:
		return e.createDocument(ctx, d, ports.KindInvoice)
	case intent.CreateOfferte:
		return e.createDocument(ctx, d, ports.KindQuotation)
	default:
		return ExecutionResult{}, fmt.Errorf("intent %q is not executable", d.Intent)
	}
}

func (e *Executor) createClient(ctx context.Context, d *draft.Draft) (ExecutionResult, error) {
	c := d.Client
	res, err := e.clients.CreateIfMissing(ctx, d.TenantID, ports.ClientInput{
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		PostalCode: c.PostalCode,
		City:       c.City,
		KvkNumber:  c.KvkNumber,
		BtwID:      c.BtwID,
	})
	if err != nil {
		return ExecutionResult{}, err
	}

	message := fmt.Sprintf("Klant %s is aangemaakt.", res.Name)
	if res.AlreadyExisted {
		message = fmt.Sprintf("Klant %s bestond al, ik heb de bestaande klant gebruikt.", res.Name)
	}

	return ExecutionResult{
		Message:    message,
		RecordID:   res.ID,
		RecordKind: "client",
		ClientName: res.Name,
	}, nil
}

func (e *Executor) createDocument(ctx context.Context, d *draft.Draft, kind string) (ExecutionResult, error) {
	doc := d.Document

	lines := make([]ports.DocumentLine, 0, len(doc.Items))
	for _, item := range doc.Items {
		lines = append(lines, ports.DocumentLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Price:       item.Price,
			VATRate:     item.VATRate,
		})
	}
	if len(lines) == 0 && doc.Amount != nil {
		rate := doc.VATRate
		if rate == "" {
			rate = extract.VATHigh
		}
		lines = append(lines, ports.DocumentLine{
			Description: "Werkzaamheden volgens afspraak",
			Quantity:    1,
			Unit:        extract.UnitStuk,
			Price:       *doc.Amount,
			VATRate:     rate,
		})
	}

	res, err := e.documents.DraftDocument(ctx, d.TenantID, d.UserID, ports.DocumentInput{
		Kind:                  kind,
		ClientName:            doc.ClientName,
		Lines:                 lines,
		IssueDate:             doc.IssueDate,
		DueInDays:             doc.DueInDays,
		ValidForDays:          doc.ValidForDays,
		Notes:                 doc.Notes,
		CreateClientIfMissing: d.PendingClientCreation,
	})
	if err != nil {
		return ExecutionResult{}, err
	}

	if res.NeedsClientCreation {
		return ExecutionResult{
			NeedsClientCreation: true,
			Message: fmt.Sprintf(
				"Klant %q bestaat nog niet. Zal ik de klant eerst aanmaken en daarna de %s? (ja/nee)",
				doc.ClientName, documentNoun(kind)),
		}, nil
	}

	message := fmt.Sprintf(
		"%s %s voor %s is aangemaakt. Subtotaal %s, btw %s, totaal %s.",
		documentNounCapitalized(kind), res.Number, res.ClientName,
		euro(res.SubtotalCents), euro(res.VATCents), euro(res.TotalCents))

	return ExecutionResult{
		Message:      message,
		RecordID:     res.ID,
		RecordNumber: res.Number,
		RecordKind:   kind,
		ClientName:   res.ClientName,
		TotalCents:   res.TotalCents,
	}, nil
}

func documentNoun(kind string) string {
	if kind == ports.KindQuotation {
		return "offerte"
	}
	return "factuur"
}

func documentNounCapitalized(kind string) string {
	if kind == ports.KindQuotation {
		return "Offerte"
	}
	return "Factuur"
}

// euro renders cents with the Dutch decimal comma.
func euro(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s€ %d,%02d", sign, cents/100, cents%100)
}

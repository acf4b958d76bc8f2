// Package intent classifies free-text chat messages into engine intents.
package intent

import "strings"

// Intent is the classified purpose of a user message.
type Intent string

const (
	// CreateOfferte starts or continues a quotation draft.
	CreateOfferte Intent = "create_offerte"
	// CreateFactuur starts or continues an invoice draft.
	CreateFactuur Intent = "create_factuur"
	// CreateClient starts or continues a client draft.
	CreateClient Intent = "create_client"
	// QueryVAT is a stateless VAT computation request.
	QueryVAT Intent = "query_vat"
	// Query is a stateless listing/overview request.
	Query Intent = "query"
	// Question is a product/documentation question, the fallback intent.
	Question Intent = "question"
)

// Result is the outcome of classifying one message.
type Result struct {
	Intent Intent
	// MultiStep reports whether the intent accumulates a draft across turns.
	MultiStep bool
}

// Keyword groups, checked in strict priority order. Quotation outranks
// invoice because "maak een offerte" contains the same generic creation
// verbs as invoice requests and would otherwise be misrouted. The order
// quotation > invoice > client > query(vat) > query > question is a
// deliberate tie-break and must not be reshuffled.
var (
	offerteKeywords = []string{"offerte", "offertes", "prijsopgave", "quotation"}
	factuurKeywords = []string{"factuur", "facturen", "invoice", "rekening"}
	clientKeywords  = []string{"klant", "client", "relatie"}
	createKeywords  = []string{"maak", "nieuwe", "nieuw", "aanmaken", "toevoegen", "voeg", "registreer", "create", "add", "new"}
	queryKeywords   = []string{"laat zien", "toon", "overzicht", "lijst", "hoeveel", "wat is", "bereken", "show", "list", "how much"}
	vatKeywords     = []string{"btw", "vat", "belasting"}
)

// Classify determines the intent of a message. It is a pure function of
// the message text and has no side effects.
func Classify(message string) Result {
	text := strings.ToLower(message)

	if containsAny(text, offerteKeywords) {
		return Result{Intent: CreateOfferte, MultiStep: true}
	}
	if containsAny(text, factuurKeywords) {
		return Result{Intent: CreateFactuur, MultiStep: true}
	}
	if containsAny(text, clientKeywords) && containsAny(text, createKeywords) {
		return Result{Intent: CreateClient, MultiStep: true}
	}
	if containsAny(text, queryKeywords) {
		if containsAny(text, vatKeywords) {
			return Result{Intent: QueryVAT}
		}
		return Result{Intent: Query}
	}

	return Result{Intent: Question}
}

// IsCreate reports whether the intent is one of the multi-step creation intents.
func IsCreate(it Intent) bool {
	switch it {
	case CreateOfferte, CreateFactuur, CreateClient:
		return true
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

package intent

import "testing"

func TestClassify_QuotationOutranksInvoice(t *testing.T) {
	// Messages containing both quotation and invoice vocabulary must always
	// resolve to the quotation intent.
	messages := []string{
		"maak een offerte in plaats van een factuur",
		"zet die factuur om naar een offerte",
		"offerte en factuur voor Jansen",
	}

	for _, msg := range messages {
		result := Classify(msg)
		if result.Intent != CreateOfferte {
			t.Fatalf("Classify(%q) = %s, want %s", msg, result.Intent, CreateOfferte)
		}
		if !result.MultiStep {
			t.Fatalf("Classify(%q) should be multi-step", msg)
		}
	}
}

func TestClassify_InvoiceBeforeQuery(t *testing.T) {
	result := Classify("laat een factuur maken voor Riza")
	if result.Intent != CreateFactuur {
		t.Fatalf("expected create_factuur, got %s", result.Intent)
	}
}

func TestClassify_ClientNeedsCreationVerb(t *testing.T) {
	if got := Classify("maak een nieuwe klant aan").Intent; got != CreateClient {
		t.Fatalf("expected create_client, got %s", got)
	}
	// A bare mention of a client without a creation verb is not an action.
	if got := Classify("welke klant belde er gisteren").Intent; got == CreateClient {
		t.Fatal("client mention without creation verb must not classify as create_client")
	}
}

func TestClassify_VATQuerySubtype(t *testing.T) {
	if got := Classify("bereken de btw over 100 euro").Intent; got != QueryVAT {
		t.Fatalf("expected query_vat, got %s", got)
	}
	if got := Classify("toon mijn overzicht").Intent; got != Query {
		t.Fatalf("expected query, got %s", got)
	}
}

func TestClassify_FallbackQuestion(t *testing.T) {
	result := Classify("hoe werkt dit eigenlijk?")
	if result.Intent != Question {
		t.Fatalf("expected question fallback, got %s", result.Intent)
	}
	if result.MultiStep {
		t.Fatal("question intent must not be multi-step")
	}
}

package engine

import (
	"strings"
	"testing"

	"boekhoud_backend/internal/chat/intent"
)

func TestCatalog_PriorityPicksClientNameFirst(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	field, question := catalog.Next(intent.CreateFactuur, Validation{Missing: []string{"amount", "clientName"}})
	if field != "clientName" {
		t.Fatalf("field = %q", field)
	}
	if question != "Voor welke klant is de factuur?" {
		t.Fatalf("question = %q", question)
	}
}

func TestCatalog_InvalidFieldGetsReason(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	field, question := catalog.Next(intent.CreateFactuur, Validation{
		Invalid: []FieldIssue{{Field: "amount", Reason: "het bedrag moet groter zijn dan nul"}},
	})
	if field != "amount" {
		t.Fatalf("field = %q", field)
	}
	if !strings.Contains(question, "groter zijn dan nul") {
		t.Fatalf("question = %q", question)
	}
}

func TestCatalog_FallbackWhenNothingToAsk(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	field, question := catalog.Next(intent.CreateFactuur, Validation{})
	if field != "" || question == "" {
		t.Fatalf("field = %q question = %q", field, question)
	}
}

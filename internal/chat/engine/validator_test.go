package engine

import (
	"testing"
	"time"

	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/extract"
	"boekhoud_backend/internal/chat/intent"
)

func TestValidate_MissingItemsAndClient(t *testing.T) {
	d := draft.New("u", "t", intent.CreateFactuur, time.Now())

	v := Validate(d)
	if v.OK() {
		t.Fatalf("empty draft must not validate")
	}
	if len(v.Missing) != 2 {
		t.Fatalf("missing = %v", v.Missing)
	}
}

func TestValidate_AmountReplacesItems(t *testing.T) {
	d := draft.New("u", "t", intent.CreateFactuur, time.Now())
	d.Document.ClientName = "Riza"
	amount := 500.0
	d.Document.Amount = &amount

	if v := Validate(d); !v.OK() {
		t.Fatalf("amount-only draft must validate, got %+v", v)
	}
}

func TestValidate_InvalidDistinctFromMissing(t *testing.T) {
	d := draft.New("u", "t", intent.CreateFactuur, time.Now())
	d.Document.ClientName = "Riza"
	d.Document.Items = []extract.LineItem{{Description: "uur", Quantity: -1, Price: 75, Unit: extract.UnitUur, VATRate: extract.VATHigh}}

	v := Validate(d)
	if len(v.Missing) != 0 {
		t.Fatalf("missing = %v", v.Missing)
	}
	if len(v.Invalid) != 1 || v.Invalid[0].Field != "items" {
		t.Fatalf("invalid = %+v", v.Invalid)
	}
}

package extract

import "testing"

func TestLineItems_DescriptionPricePattern(t *testing.T) {
	items := LineItems("maak een factuur voor Riza, 320 stops price 1.25")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Description != "stops" {
		t.Errorf("description = %q, want %q", item.Description, "stops")
	}
	if item.Quantity != 320 {
		t.Errorf("quantity = %v, want 320", item.Quantity)
	}
	if item.Price != 1.25 {
		t.Errorf("price = %v, want 1.25", item.Price)
	}
	if item.Unit != UnitStuk {
		t.Errorf("unit = %q, want %q", item.Unit, UnitStuk)
	}
	if item.VATRate != VATHigh {
		t.Errorf("vatRate = %q, want %q", item.VATRate, VATHigh)
	}
}

func TestLineItems_UnitPricePattern(t *testing.T) {
	items := LineItems("offerte voor Jansen: 5 uur à 75; 12 stopcontacten voor 35,50")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if items[0].Unit != UnitUur || items[0].Quantity != 5 || items[0].Price != 75 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Unit != UnitStop || items[1].Quantity != 12 || items[1].Price != 35.50 {
		t.Errorf("second item = %+v", items[1])
	}
}

func TestLineItems_QtyTimesPricePattern(t *testing.T) {
	items := LineItems("3 x 25 schilderwerk")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Description != "schilderwerk" || items[0].Quantity != 3 || items[0].Price != 25 {
		t.Errorf("item = %+v", items[0])
	}
}

func TestLineItems_BtwTokenSetsRate(t *testing.T) {
	items := LineItems("10 uur à 80 btw 9%, 2 x 100 materiaal btw 0%")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].VATRate != VATLow {
		t.Errorf("first item vatRate = %q, want %q", items[0].VATRate, VATLow)
	}
	if items[1].VATRate != VATZero {
		t.Errorf("second item vatRate = %q, want %q", items[1].VATRate, VATZero)
	}
}

func TestLineItems_SkipsNonItemClauses(t *testing.T) {
	items := LineItems("graag een offerte maken, met vriendelijke groet")
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d: %+v", len(items), items)
	}
}

func TestLineItems_RejectsZeroQuantity(t *testing.T) {
	items := LineItems("0 uur à 75")
	if len(items) != 0 {
		t.Fatalf("expected no items for zero quantity, got %d", len(items))
	}
}

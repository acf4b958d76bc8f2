package draft

import (
	"testing"
	"time"

	"boekhoud_backend/internal/chat/extract"
	"boekhoud_backend/internal/chat/intent"
)

func TestMerge_OnlyFillsAbsentFields(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	d := New("user-1", "tenant-1", intent.CreateFactuur, now)
	d.Document.ClientName = "Jansen BV"

	amount := 500.0
	update := &Draft{Document: &DocumentFields{
		ClientName: "Pietersen",
		Amount:     &amount,
	}}

	later := now.Add(time.Minute)
	d.Merge(update, later)

	if d.Document.ClientName != "Jansen BV" {
		t.Fatalf("clientName overwritten: %q", d.Document.ClientName)
	}
	if d.Document.Amount == nil || *d.Document.Amount != 500 {
		t.Fatalf("amount not filled: %+v", d.Document.Amount)
	}
	if !d.LastUpdated.Equal(later) {
		t.Fatalf("lastUpdated not bumped")
	}
}

func TestMerge_ItemsAreAllOrNothing(t *testing.T) {
	now := time.Now()
	d := New("user-1", "tenant-1", intent.CreateOfferte, now)
	d.Document.Items = []extract.LineItem{{Description: "uur", Quantity: 5, Price: 75, Unit: extract.UnitUur, VATRate: extract.VATHigh}}

	update := &Draft{Document: &DocumentFields{
		Items: []extract.LineItem{{Description: "materiaal", Quantity: 1, Price: 100, Unit: extract.UnitStuk, VATRate: extract.VATHigh}},
	}}
	d.Merge(update, now)

	if len(d.Document.Items) != 1 || d.Document.Items[0].Description != "uur" {
		t.Fatalf("existing items replaced: %+v", d.Document.Items)
	}
}

func TestNew_ClientIntentGetsClientFields(t *testing.T) {
	d := New("user-1", "tenant-1", intent.CreateClient, time.Now())
	if d.Client == nil || d.Document != nil {
		t.Fatalf("expected client fields only, got %+v", d)
	}
	if d.Status != StatusCollecting {
		t.Fatalf("status = %q", d.Status)
	}
	if d.ConversationID == "" {
		t.Fatalf("missing conversation id")
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusCollecting, StatusValidating, StatusPreviewing} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusConfirmed, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

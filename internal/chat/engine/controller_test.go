package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/intent"
	"boekhoud_backend/internal/chat/ports"
	"boekhoud_backend/platform/apperr"
	"boekhoud_backend/platform/logger"
)

type fakeClients struct {
	created []ports.ClientInput
}

func (f *fakeClients) CreateIfMissing(_ context.Context, _ string, in ports.ClientInput) (ports.ClientResult, error) {
	f.created = append(f.created, in)
	return ports.ClientResult{ID: "client-1", Name: in.Name}, nil
}

type fakeDocuments struct {
	calls         int
	requireClient bool
}

func (f *fakeDocuments) DraftDocument(_ context.Context, _, _ string, in ports.DocumentInput) (ports.DocumentResult, error) {
	f.calls++
	if f.requireClient && !in.CreateClientIfMissing {
		return ports.DocumentResult{NeedsClientCreation: true}, nil
	}
	return ports.DocumentResult{
		ID:            "doc-1",
		Number:        "FAC-2026-0001",
		ClientName:    in.ClientName,
		SubtotalCents: 40000,
		VATCents:      8400,
		TotalCents:    48400,
	}, nil
}

func newTestController(t *testing.T) (*Controller, *fakeDocuments, *draft.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := draft.NewStore(rdb, 24*time.Hour)

	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	docs := &fakeDocuments{}
	executor := NewExecutor(&fakeClients{}, docs)
	ctrl := NewController(store, executor, catalog, nil, logger.New("development"))
	return ctrl, docs, store
}

func inbound(message string, it intent.Intent) Inbound {
	return Inbound{
		UserID:    "user-1",
		TenantID:  "tenant-1",
		UserEmail: "zzp@voorbeeld.nl",
		RequestID: "req-1",
		Message:   message,
		Intent:    it,
	}
}

func TestController_InvoiceHappyPath(t *testing.T) {
	ctrl, docs, _ := newTestController(t)
	ctx := context.Background()

	reply, err := ctrl.HandleMessage(ctx, inbound("maak een factuur voor Riza, 320 stops price 1.25", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("first message: %v", err)
	}
	if reply.Status != string(draft.StatusPreviewing) {
		t.Fatalf("status = %q, message = %q", reply.Status, reply.Message)
	}
	if !strings.Contains(reply.Message, "Riza") {
		t.Fatalf("preview misses client: %q", reply.Message)
	}

	reply, err = ctrl.HandleMessage(ctx, inbound("ja", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("confirmation: %v", err)
	}
	if !reply.Done {
		t.Fatalf("expected done, got %+v", reply)
	}
	if reply.Record == nil || reply.Record.Number != "FAC-2026-0001" {
		t.Fatalf("record = %+v", reply.Record)
	}
	if !strings.Contains(reply.Message, "€ 484,00") {
		t.Fatalf("message misses total: %q", reply.Message)
	}
	if docs.calls != 1 {
		t.Fatalf("drafter called %d times", docs.calls)
	}
}

func TestController_PreviewShowsComputedTotals(t *testing.T) {
	ctrl, docs, _ := newTestController(t)
	ctx := context.Background()

	if _, err := ctrl.HandleMessage(ctx, inbound("maak een offerte, 320 stopcontacten à 1,25", intent.CreateOfferte)); err != nil {
		t.Fatalf("draft: %v", err)
	}

	reply, err := ctrl.HandleMessage(ctx, inbound("Riza", intent.CreateOfferte))
	if err != nil {
		t.Fatalf("client answer: %v", err)
	}
	if reply.Status != string(draft.StatusPreviewing) {
		t.Fatalf("status = %q, message = %q", reply.Status, reply.Message)
	}
	for _, want := range []string{"Riza", "€ 400,00", "€ 84,00", "€ 484,00"} {
		if !strings.Contains(reply.Message, want) {
			t.Fatalf("preview misses %q: %q", want, reply.Message)
		}
	}
	if docs.calls != 0 {
		t.Fatalf("drafter must wait for confirmation, calls = %d", docs.calls)
	}
}

func TestController_PreviewTotalsFromBareAmount(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctx := context.Background()

	if _, err := ctrl.HandleMessage(ctx, inbound("factuur voor Jansen BV", intent.CreateFactuur)); err != nil {
		t.Fatalf("draft: %v", err)
	}

	reply, err := ctrl.HandleMessage(ctx, inbound("500", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("amount answer: %v", err)
	}
	if reply.Status != string(draft.StatusPreviewing) {
		t.Fatalf("status = %q, message = %q", reply.Status, reply.Message)
	}
	for _, want := range []string{"€ 500,00", "€ 105,00", "€ 605,00"} {
		if !strings.Contains(reply.Message, want) {
			t.Fatalf("preview misses %q: %q", want, reply.Message)
		}
	}
}

func TestController_AsksForMissingClientFirst(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctx := context.Background()

	reply, err := ctrl.HandleMessage(ctx, inbound("maak een factuur, 5 uur à 75", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("first message: %v", err)
	}
	if reply.Status != string(draft.StatusCollecting) {
		t.Fatalf("status = %q", reply.Status)
	}
	if reply.Message != "Voor welke klant is de factuur?" {
		t.Fatalf("question = %q", reply.Message)
	}

	reply, err = ctrl.HandleMessage(ctx, inbound("Jansen BV", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if reply.Status != string(draft.StatusPreviewing) {
		t.Fatalf("status after answer = %q, message %q", reply.Status, reply.Message)
	}
	if !strings.Contains(reply.Message, "Jansen BV") {
		t.Fatalf("preview = %q", reply.Message)
	}
}

func TestController_ConfirmedDraftExecutesOnce(t *testing.T) {
	ctrl, docs, _ := newTestController(t)
	ctx := context.Background()

	if _, err := ctrl.HandleMessage(ctx, inbound("factuur voor Riza, 2 x 100 onderhoud", intent.CreateFactuur)); err != nil {
		t.Fatalf("draft: %v", err)
	}
	reply, err := ctrl.HandleMessage(ctx, inbound("ja", intent.CreateFactuur))
	if err != nil || !reply.Done {
		t.Fatalf("confirm: %v %+v", err, reply)
	}

	// A replayed confirmation starts over instead of executing again.
	reply, err = ctrl.HandleMessage(ctx, inbound("ja", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if reply.Done {
		t.Fatalf("replay must not complete: %+v", reply)
	}
	if docs.calls != 1 {
		t.Fatalf("drafter called %d times", docs.calls)
	}
}

func TestController_NeedsClientCreationRoundTrip(t *testing.T) {
	ctrl, docs, _ := newTestController(t)
	docs.requireClient = true
	ctx := context.Background()

	if _, err := ctrl.HandleMessage(ctx, inbound("offerte voor Nieuwe Klant, 12 stopcontacten voor 35,50", intent.CreateOfferte)); err != nil {
		t.Fatalf("draft: %v", err)
	}

	reply, err := ctrl.HandleMessage(ctx, inbound("ja", intent.CreateOfferte))
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if reply.Done || !strings.Contains(reply.Message, "bestaat nog niet") {
		t.Fatalf("expected client creation prompt, got %+v", reply)
	}

	reply, err = ctrl.HandleMessage(ctx, inbound("ja", intent.CreateOfferte))
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if !reply.Done {
		t.Fatalf("expected completion, got %+v", reply)
	}
	if docs.calls != 2 {
		t.Fatalf("drafter called %d times", docs.calls)
	}
}

func TestController_CancelKeywordFreesSlot(t *testing.T) {
	ctrl, _, store := newTestController(t)
	ctx := context.Background()

	if _, err := ctrl.HandleMessage(ctx, inbound("maak een factuur, 5 uur à 75", intent.CreateFactuur)); err != nil {
		t.Fatalf("draft: %v", err)
	}

	reply, err := ctrl.HandleMessage(ctx, inbound("laat maar zitten", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !reply.Done || reply.Status != string(draft.StatusCancelled) {
		t.Fatalf("reply = %+v", reply)
	}

	if _, err := store.Get(ctx, "user-1", intent.CreateFactuur); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("slot not freed: %v", err)
	}
}

func TestController_RejectionCancelsPreview(t *testing.T) {
	ctrl, docs, _ := newTestController(t)
	ctx := context.Background()

	if _, err := ctrl.HandleMessage(ctx, inbound("factuur voor Riza, 3 x 25 schilderwerk", intent.CreateFactuur)); err != nil {
		t.Fatalf("draft: %v", err)
	}

	reply, err := ctrl.HandleMessage(ctx, inbound("nee", intent.CreateFactuur))
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if reply.Status != string(draft.StatusCancelled) {
		t.Fatalf("status = %q", reply.Status)
	}
	if docs.calls != 0 {
		t.Fatalf("drafter must not run, calls = %d", docs.calls)
	}
}

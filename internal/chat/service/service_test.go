package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"boekhoud_backend/internal/chat/draft"
	"boekhoud_backend/internal/chat/engine"
	"boekhoud_backend/internal/chat/knowledge"
	"boekhoud_backend/internal/chat/ports"
	"boekhoud_backend/platform/logger"
)

type fakeClients struct{}

func (f *fakeClients) CreateIfMissing(_ context.Context, _ string, in ports.ClientInput) (ports.ClientResult, error) {
	return ports.ClientResult{ID: "client-1", Name: in.Name}, nil
}

type fakeDocuments struct {
	summaries []ports.DocumentSummary
	lastKind  string
}

func (f *fakeDocuments) DraftDocument(_ context.Context, _, _ string, in ports.DocumentInput) (ports.DocumentResult, error) {
	return ports.DocumentResult{
		ID:         "doc-1",
		Number:     "FAC-2026-0001",
		ClientName: in.ClientName,
		TotalCents: 48400,
	}, nil
}

func (f *fakeDocuments) RecentDocuments(_ context.Context, _, kind string, _ int) ([]ports.DocumentSummary, error) {
	f.lastKind = kind
	return f.summaries, nil
}

func newTestService(t *testing.T) (*Service, *fakeDocuments) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := draft.NewStore(rdb, 24*time.Hour)

	catalog, err := engine.LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	base, err := knowledge.Load()
	if err != nil {
		t.Fatalf("load knowledge base: %v", err)
	}
	kb := knowledge.NewService(base, knowledge.NewCache())

	docs := &fakeDocuments{}
	log := logger.New("development")
	executor := engine.NewExecutor(&fakeClients{}, docs)
	controller := engine.NewController(store, executor, catalog, nil, log)

	return NewService(store, controller, kb, docs, log), docs
}

func message(text string) MessageInput {
	return MessageInput{
		UserID:    "user-1",
		TenantID:  "tenant-1",
		UserEmail: "zzp@voorbeeld.nl",
		RequestID: "req-1",
		Message:   text,
	}
}

func TestService_VATQuery(t *testing.T) {
	svc, _ := newTestService(t)

	reply, err := svc.HandleMessage(context.Background(), message("hoeveel btw over 500?"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !reply.Done {
		t.Fatalf("expected stateless reply, got %+v", reply)
	}
	if !strings.Contains(reply.Message, "€ 105,00") {
		t.Fatalf("vat amount missing: %q", reply.Message)
	}
	if !strings.Contains(reply.Message, "€ 605,00") {
		t.Fatalf("gross amount missing: %q", reply.Message)
	}
}

func TestService_VATQueryExplicitRate(t *testing.T) {
	svc, _ := newTestService(t)

	reply, err := svc.HandleMessage(context.Background(), message("bereken btw 9% over 100"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(reply.Message, "(9%)") || !strings.Contains(reply.Message, "€ 9,00") {
		t.Fatalf("low rate not applied: %q", reply.Message)
	}
}

func TestService_VATQueryWithoutAmountAsksForOne(t *testing.T) {
	svc, _ := newTestService(t)

	reply, err := svc.HandleMessage(context.Background(), message("hoeveel btw moet ik rekenen?"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(reply.Message, "welk bedrag") {
		t.Fatalf("expected amount prompt: %q", reply.Message)
	}
}

func TestService_ListingQuery(t *testing.T) {
	svc, docs := newTestService(t)
	docs.summaries = []ports.DocumentSummary{
		{Number: "FAC-2026-0001", ClientName: "Riza", TotalCents: 48400, IssueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{Number: "OFF-2026-0002", ClientName: "Jansen", TotalCents: 90000, IssueDate: time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)},
	}

	reply, err := svc.HandleMessage(context.Background(), message("toon een overzicht van mijn documenten"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(reply.Message, "FAC-2026-0001") || !strings.Contains(reply.Message, "OFF-2026-0002") {
		t.Fatalf("listing incomplete: %q", reply.Message)
	}
	if !strings.Contains(reply.Message, "€ 484,00") {
		t.Fatalf("totals missing: %q", reply.Message)
	}
	if docs.lastKind != "" {
		t.Fatalf("kind = %q, want unfiltered", docs.lastKind)
	}
}

func TestService_ListingQueryEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	reply, err := svc.HandleMessage(context.Background(), message("laat zien wat er openstaat"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(reply.Message, "geen documenten") {
		t.Fatalf("expected empty listing message: %q", reply.Message)
	}
}

func TestService_QuestionFallsBackToKnowledge(t *testing.T) {
	svc, _ := newTestService(t)

	reply, err := svc.HandleMessage(context.Background(), message("waarom moet ik btw rekenen op mijn diensten?"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !reply.Done || reply.Message == "" {
		t.Fatalf("expected knowledge answer, got %+v", reply)
	}
	if !strings.Contains(strings.ToLower(reply.Message), "btw") {
		t.Fatalf("answer off-topic: %q", reply.Message)
	}
}

func TestService_ContinuationRoutesBareAnswerToActiveDraft(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reply, err := svc.HandleMessage(ctx, message("maak een factuur, 5 uur à 75"))
	if err != nil {
		t.Fatalf("start draft: %v", err)
	}
	if reply.Status != string(draft.StatusCollecting) {
		t.Fatalf("status = %q, message = %q", reply.Status, reply.Message)
	}

	// A bare name classifies as a question, but with exactly one active
	// draft it continues that conversation.
	reply, err = svc.HandleMessage(ctx, message("Jansen"))
	if err != nil {
		t.Fatalf("continuation: %v", err)
	}
	if reply.Status != string(draft.StatusPreviewing) {
		t.Fatalf("status = %q, message = %q", reply.Status, reply.Message)
	}
	if !strings.Contains(reply.Message, "Jansen") {
		t.Fatalf("preview misses client: %q", reply.Message)
	}
}

package draft

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"boekhoud_backend/internal/chat/intent"
	"boekhoud_backend/platform/apperr"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, ttl)
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t, 24*time.Hour)
	ctx := context.Background()

	d := New("user-1", "tenant-1", intent.CreateFactuur, time.Now())
	d.Document.ClientName = "Jansen BV"

	if err := store.Save(ctx, d); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "user-1", intent.CreateFactuur)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ConversationID != d.ConversationID || got.Document.ClientName != "Jansen BV" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	byConv, err := store.GetByConversation(ctx, d.ConversationID)
	if err != nil {
		t.Fatalf("get by conversation: %v", err)
	}
	if byConv.UserID != "user-1" {
		t.Fatalf("conversation lookup mismatch: %+v", byConv)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t, 24*time.Hour)

	_, err := store.Get(context.Background(), "user-1", intent.CreateOfferte)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStore_GetCancelsStaleDraft(t *testing.T) {
	store := newTestStore(t, 24*time.Hour)
	ctx := context.Background()

	d := New("user-1", "tenant-1", intent.CreateFactuur, time.Now().Add(-25*time.Hour))
	if err := store.Save(ctx, d); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := store.Get(ctx, "user-1", intent.CreateFactuur); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected stale draft to be reported not found, got %v", err)
	}

	// The slot must now be free.
	if _, err := store.GetByConversation(ctx, d.ConversationID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected stale draft to be deleted, got %v", err)
	}
}

func TestStore_FinishFreesActiveSlot(t *testing.T) {
	store := newTestStore(t, 24*time.Hour)
	ctx := context.Background()

	d := New("user-1", "tenant-1", intent.CreateOfferte, time.Now())
	if err := store.Save(ctx, d); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Finish(ctx, d, StatusConfirmed); err != nil {
		t.Fatalf("finish: %v", err)
	}

	if _, err := store.Get(ctx, "user-1", intent.CreateOfferte); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected active slot to be free, got %v", err)
	}

	record, err := store.GetByConversation(ctx, d.ConversationID)
	if err != nil {
		t.Fatalf("terminal record gone: %v", err)
	}
	if record.Status != StatusConfirmed {
		t.Fatalf("status = %q, want %q", record.Status, StatusConfirmed)
	}
}

func TestStore_ExpireStale(t *testing.T) {
	store := newTestStore(t, time.Hour)
	ctx := context.Background()

	stale := New("user-1", "tenant-1", intent.CreateFactuur, time.Now().Add(-2*time.Hour))
	fresh := New("user-2", "tenant-1", intent.CreateFactuur, time.Now())
	for _, d := range []*Draft{stale, fresh} {
		if err := store.Save(ctx, d); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	expired, err := store.ExpireStale(ctx)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if len(expired) != 1 || expired[0].ConversationID != stale.ConversationID {
		t.Fatalf("expired = %+v", expired)
	}
	if expired[0].Status != StatusCancelled {
		t.Fatalf("status = %q", expired[0].Status)
	}

	if _, err := store.Get(ctx, "user-2", intent.CreateFactuur); err != nil {
		t.Fatalf("fresh draft must survive: %v", err)
	}
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/surfrank/surfrank/pkg/graphio"
)

func sampleDoc() graphio.Document {
	return graphio.Document{
		Nodes: []graphio.Node{{ID: "A"}, {ID: "B"}},
		Edges: []graphio.Edge{{From: "A", To: "B"}},
	}
}

func TestNew(t *testing.T) {
	s1 := New(sampleDoc(), DefaultTTL)
	s2 := New(sampleDoc(), DefaultTTL)

	if s1.ID == "" {
		t.Error("session ID is empty")
	}
	if s1.ID == s2.ID {
		t.Error("session IDs are not unique")
	}
	if s1.IsExpired() {
		t.Error("fresh session reports expired")
	}
	if len(s1.Graph.Nodes) != 2 {
		t.Errorf("graph has %d nodes, want 2", len(s1.Graph.Nodes))
	}
}

func TestIsExpired(t *testing.T) {
	s := New(sampleDoc(), -time.Minute)
	if !s.IsExpired() {
		t.Error("past-TTL session reports live")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New(sampleDoc(), DefaultTTL)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.ID != sess.ID {
		t.Fatalf("Get returned %+v, want session %s", got, sess.ID)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Error("session survived Delete")
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore()
	got, err := store.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get(unknown) = %+v, want nil", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New(sampleDoc(), -time.Minute)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("expired session returned from Get")
	}
	if store.Len() != 0 {
		t.Error("expired session not evicted on Get")
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	live := New(sampleDoc(), DefaultTTL)
	dead := New(sampleDoc(), -time.Minute)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d after Cleanup, want 1", store.Len())
	}
	if got, _ := store.Get(ctx, live.ID); got == nil {
		t.Error("Cleanup removed a live session")
	}
}

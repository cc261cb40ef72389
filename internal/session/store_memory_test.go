package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Save(ctx, "tok", map[string]any{KeyUserID: int64(5), KeyLoggedIn: true}, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	values, err := store.Load(ctx, "tok")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// JSON turns numbers into float64, as Postgres JSONB does.
	if values[KeyUserID] != float64(5) || values[KeyLoggedIn] != true {
		t.Fatalf("unexpected values: %#v", values)
	}

	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "tok"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Save(ctx, "tok", map[string]any{"a": "b"}, now.Add(time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	now = now.Add(time.Minute)
	if _, err := store.Load(ctx, "tok"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted")
	}
}

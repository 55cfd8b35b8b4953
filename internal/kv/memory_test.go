package kv

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, err := s.Get(ctx, KeyTransactions); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set(ctx, KeyTransactions, `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, KeyTransactions)
	if err != nil || !ok || v != `[]` {
		t.Fatalf("get after set: %q ok=%v err=%v", v, ok, err)
	}

	if err := s.Delete(ctx, KeyTransactions); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyTransactions); ok {
		t.Fatal("key survived delete")
	}
	// Deleting an absent key is fine.
	if err := s.Delete(ctx, KeyTransactions); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

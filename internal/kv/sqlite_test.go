package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "mymoney.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get(ctx, KeySession); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, KeySession, `{"nome":"Ana"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	// Overwrite replaces the full value.
	if err := store.Set(ctx, KeySession, `{"nome":"Bia"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := store.Get(ctx, KeySession)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"nome":"Bia"}` {
		t.Fatalf("value = %q, want overwritten blob", v)
	}

	if err := store.Delete(ctx, KeySession); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeySession); ok {
		t.Fatal("key survived delete")
	}
}

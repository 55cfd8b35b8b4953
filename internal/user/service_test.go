package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mymoney/internal/kv"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore())

	created, err := svc.Register(ctx, "Ana", "ana@example.com", "s3nha")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == "" || created.Name != "Ana" {
		t.Fatalf("created = %+v", created)
	}
	if created.PasswordHash != "" {
		t.Fatal("password hash leaked in the returned user")
	}

	got, err := svc.Login(ctx, "ana@example.com", "s3nha")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("login returned %+v, want id %s", got, created.ID)
	}

	// Session survives via the blob store.
	restored, ok, err := svc.Session(ctx)
	if err != nil || !ok {
		t.Fatalf("session: ok=%v err=%v", ok, err)
	}
	if restored.Email != "ana@example.com" {
		t.Fatalf("restored session = %+v", restored)
	}
	if restored.PasswordHash != "" {
		t.Fatal("session blob carries the password hash")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore())
	if _, err := svc.Register(ctx, "Ana", "ana@example.com", "certa"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(ctx, "ana@example.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "ninguem@example.com", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore())
	if _, err := svc.Register(ctx, "Ana", "ana@example.com", "x"); err != nil {
		t.Fatal(err)
	}
	// Email comparison is case-insensitive.
	if _, err := svc.Register(ctx, "Outra", "Ana@Example.com", "y"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore())
	cases := [][3]string{
		{"", "a@b.c", "x"},
		{"Ana", "", "x"},
		{"Ana", "a@b.c", ""},
		{"   ", "a@b.c", "x"},
	}
	for _, c := range cases {
		if _, err := svc.Register(ctx, c[0], c[1], c[2]); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("register(%q,%q,...): got %v, want ErrMissingFields", c[0], c[1], err)
		}
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore())
	if _, err := svc.Register(ctx, "Ana", "ana@example.com", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "x"); err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := svc.Session(ctx); ok {
		t.Fatal("session survived logout")
	}
}

func TestStoredHashIsNotPlaintext(t *testing.T) {
	ctx := context.Background()
	blobs := kv.NewMemoryStore()
	svc := NewService(blobs)
	if _, err := svc.Register(ctx, "Ana", "ana@example.com", "segredo"); err != nil {
		t.Fatal(err)
	}

	raw, ok, err := blobs.Get(ctx, kv.KeyUsers)
	if err != nil || !ok {
		t.Fatalf("accounts blob: ok=%v err=%v", ok, err)
	}
	if strings.Contains(raw, "segredo") {
		t.Fatal("plaintext password persisted")
	}
	if !strings.Contains(raw, "$2") {
		t.Fatalf("expected bcrypt hash in blob: %s", raw)
	}
}

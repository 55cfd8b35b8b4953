package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "t1",
		Description: "Salário",
		Kind:        Income,
		Amount:      Money{Cents: 350000},
		OccurredAt:  time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		tx   Transaction
		want error
	}{
		{"empty description", Transaction{Description: "   ", Kind: Income, Amount: Money{Cents: 100}}, ErrEmptyDescription},
		{"missing kind", Transaction{Description: "x", Amount: Money{Cents: 100}}, ErrInvalidKind},
		{"unknown kind", Transaction{Description: "x", Kind: "transfer", Amount: Money{Cents: 100}}, ErrInvalidKind},
		{"negative income", Transaction{Description: "x", Kind: Income, Amount: Money{Cents: -500}}, ErrNegativeIncome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.Validate()
			if err != tc.want {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if !IsInvalidInput(err) {
				t.Fatalf("%v should classify as invalid input", err)
			}
		})
	}
}

func TestTransactionSigned(t *testing.T) {
	in := Transaction{Kind: Income, Amount: Money{Cents: 1000}}
	out := Transaction{Kind: Expense, Amount: Money{Cents: 250}}
	if in.Signed() != 1000 {
		t.Fatalf("income signed = %d, want 1000", in.Signed())
	}
	if out.Signed() != -250 {
		t.Fatalf("expense signed = %d, want -250", out.Signed())
	}
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	tx := Transaction{
		ID:          "abc",
		Description: "Supermercado",
		Kind:        Expense,
		Amount:      Money{Cents: 25050},
		OccurredAt:  time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Transaction
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != tx.ID || got.Description != tx.Description || got.Kind != tx.Kind ||
		got.Amount != tx.Amount || !got.OccurredAt.Equal(tx.OccurredAt) {
		t.Fatalf("round trip mismatch: %+v != %+v", got, tx)
	}
}

func TestTransactionUnmarshalNormalizesSignedLegacy(t *testing.T) {
	// Old clients persisted expenses as signed deltas.
	raw := `{"id":"2","descricao":"Supermercado","tipo":"saida","valor":-250,"data":"2025-01-02T00:00:00Z"}`
	var got Transaction
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Amount.Cents != 25000 {
		t.Fatalf("amount = %d cents, want 25000 (unsigned magnitude)", got.Amount.Cents)
	}
	if got.Kind != Expense {
		t.Fatalf("kind = %q, want saida", got.Kind)
	}
}

func TestInPeriod(t *testing.T) {
	tx := Transaction{OccurredAt: time.Date(2025, time.March, 31, 23, 0, 0, 0, time.UTC)}
	if !tx.InPeriod(time.March, 2025) {
		t.Fatal("expected March 2025 match")
	}
	if tx.InPeriod(time.April, 2025) || tx.InPeriod(time.March, 2024) {
		t.Fatal("unexpected period match")
	}
}

package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	// Kind wire values follow the original API contract.
	Income  Kind = "entrada"
	Expense Kind = "saida"
)

type (
	Kind string

	// Transaction is one recorded income or expense event. Amount is an
	// unsigned magnitude; direction comes from Kind.
	Transaction struct {
		ID          string    `json:"id"`
		Description string    `json:"descricao"`
		Kind        Kind      `json:"tipo"`
		Amount      Money     `json:"valor"`
		OccurredAt  time.Time `json:"data"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrNegativeIncome   = errors.New("income cannot be negative")
	ErrNotFound         = errors.New("transaction not found")
)

// IsInvalidInput reports whether err belongs to the client-side validation
// family, as opposed to NotFound or storage errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeIncome)
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if t.Amount.Cents < 0 {
		if t.Kind == Income {
			return ErrNegativeIncome
		}
		return ErrInvalidAmount
	}
	return nil
}

// Signed returns the transaction's contribution to the balance in cents:
// positive for income, negative for expense.
func (t Transaction) Signed() int64 {
	if t.Kind == Income {
		return t.Amount.Cents
	}
	return -t.Amount.Cents
}

// InPeriod reports whether the transaction occurred within the given
// calendar month and year.
func (t Transaction) InPeriod(month time.Month, year int) bool {
	return t.OccurredAt.Month() == month && t.OccurredAt.Year() == year
}

// Normalize folds a legacy signed amount into the canonical unsigned
// magnitude + kind representation. Kind stays authoritative for direction.
func (t Transaction) Normalize() Transaction {
	if t.Amount.Cents < 0 {
		t.Amount.Cents = -t.Amount.Cents
	}
	return t
}

// transactionWire is the JSON shape shared by the REST API and the persisted
// @transacoes blob: valor travels as a decimal number, data as ISO-8601.
type transactionWire struct {
	ID          string      `json:"id"`
	Description string      `json:"descricao"`
	Kind        Kind        `json:"tipo"`
	Amount      json.Number `json:"valor"`
	OccurredAt  string      `json:"data"`
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionWire{
		ID:          t.ID,
		Description: t.Description,
		Kind:        t.Kind,
		Amount:      json.Number(t.Amount.String()),
		OccurredAt:  t.OccurredAt.UTC().Format(time.RFC3339),
	})
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w transactionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	amount, err := ParseAmount(w.Amount.String())
	if err != nil {
		// Legacy blobs may carry signed deltas; keep the magnitude.
		signed, serr := ParseSignedAmount(w.Amount.String())
		if serr != nil {
			return ErrInvalidAmount
		}
		amount = signed.Abs()
	}
	occurred, err := time.Parse(time.RFC3339, w.OccurredAt)
	if err != nil && w.OccurredAt != "" {
		return err
	}
	*t = Transaction{
		ID:          w.ID,
		Description: w.Description,
		Kind:        w.Kind,
		Amount:      amount,
		OccurredAt:  occurred,
	}
	return nil
}

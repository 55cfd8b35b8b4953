// Package core holds the MyMoney ledger domain: transactions, money
// parsing, and the derived-totals computation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary magnitude in cents. Totals may carry negative cents
// (a negative balance); validated transaction amounts never do.
type Money struct {
	Cents int64
}

// String renders the amount as a plain decimal with two places ("12.34").
func (m Money) String() string {
	return decimal.New(m.Cents, -2).StringFixed(2)
}

// Reais returns the value in currency units for display purposes only.
// Calculations stay in cents.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// ParseAmount converts a decimal string to Money with half-up rounding to
// cents. Both dot (12.34) and comma (12,34) separators are accepted.
// Negative, empty, or non-numeric input is rejected.
func ParseAmount(s string) (Money, error) {
	m, err := ParseSignedAmount(s)
	if err != nil {
		return Money{}, err
	}
	if m.Cents < 0 {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

// ParseSignedAmount is ParseAmount without the sign restriction. It exists
// for the boundary normalization of legacy signed blobs.
func ParseSignedAmount(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if !cents.IsInteger() || !cents.BigInt().IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

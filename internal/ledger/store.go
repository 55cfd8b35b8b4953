// Package ledger owns the authoritative in-memory transaction list and its
// derived totals. All mutations go through the Store so totals never go
// stale, and every successful mutation is written through to the blob store
// as a full snapshot.
package ledger

import (
	"context"
	"encoding/json"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mymoney/internal/core"
	"mymoney/internal/kv"
)

// Candidate is the unvalidated input for Add. Amount is the raw user string;
// both "," and "." decimal separators are accepted.
type Candidate struct {
	Description string
	Kind        core.Kind
	Amount      string
	OccurredAt  time.Time // zero means "now"
}

// Patch carries a partial update for Update. Nil fields keep the existing
// value.
type Patch struct {
	Description *string
	Kind        *core.Kind
	Amount      *string
	OccurredAt  *time.Time
}

type Store struct {
	mu     sync.RWMutex
	blobs  kv.Store
	items  []core.Transaction
	totals core.Totals

	// rev increments on every mutation. A Load that resolves after a newer
	// mutation is discarded instead of clobbering it.
	rev uint64

	now   func() time.Time
	newID func() string
}

func New(blobs kv.Store) *Store {
	return &Store{
		blobs: blobs,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load restores the ledger from the persisted @transacoes blob. Missing or
// corrupt data degrades to an empty ledger; storage failures are logged and
// swallowed. Load never fails the caller.
func (s *Store) Load(ctx context.Context) {
	s.mu.RLock()
	startRev := s.rev
	s.mu.RUnlock()

	raw, ok, err := s.blobs.Get(ctx, kv.KeyTransactions)

	var loaded []core.Transaction
	switch {
	case err != nil:
		slog.ErrorContext(ctx, "Ledger load failed, starting empty", "error", err)
	case !ok:
		slog.InfoContext(ctx, "No persisted ledger found, starting empty")
	default:
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			slog.ErrorContext(ctx, "Persisted ledger is corrupt, starting empty", "error", err)
			loaded = nil
		}
	}
	for i := range loaded {
		loaded[i] = loaded[i].Normalize()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rev != startRev {
		// A mutation won the race; its state is newer than what we read.
		slog.WarnContext(ctx, "Discarding stale ledger load", "loaded", len(loaded))
		return
	}
	s.items = loaded
	s.totals = core.ComputeTotals(s.items)
	slog.InfoContext(ctx, "Ledger loaded", "transactions", len(s.items))
}

// Add validates the candidate, assigns an id, appends it to the sequence,
// persists the full list, and returns the stored transaction. On validation
// failure no mutation occurs.
func (s *Store) Add(ctx context.Context, c Candidate) (core.Transaction, error) {
	amount, err := parseAmount(c.Amount, c.Kind)
	if err != nil {
		return core.Transaction{}, err
	}

	occurred := c.OccurredAt
	if occurred.IsZero() {
		occurred = s.now()
	}

	tx := core.Transaction{
		ID:          s.newID(),
		Description: trimmed(c.Description),
		Kind:        c.Kind,
		Amount:      amount,
		OccurredAt:  occurred,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, tx)
	s.commitLocked(ctx)
	return tx, nil
}

// Update merges the patch onto the stored transaction, re-validates the
// merged result under the same rules as Add, and persists. Absent patch
// fields are preserved.
func (s *Store) Update(ctx context.Context, id string, p Patch) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return core.Transaction{}, core.ErrNotFound
	}

	merged := s.items[idx]
	if p.Description != nil {
		merged.Description = trimmed(*p.Description)
	}
	if p.Kind != nil {
		merged.Kind = *p.Kind
	}
	if p.Amount != nil {
		amount, err := parseAmount(*p.Amount, merged.Kind)
		if err != nil {
			return core.Transaction{}, err
		}
		merged.Amount = amount
	}
	if p.OccurredAt != nil {
		merged.OccurredAt = *p.OccurredAt
	}
	if err := merged.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.items[idx] = merged
	s.commitLocked(ctx)
	return merged, nil
}

// Remove deletes the transaction with the given id and persists.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return core.ErrNotFound
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.commitLocked(ctx)
	return nil
}

// Totals returns the aggregate for the current sequence. It is computed over
// a snapshot, so it is safe to call while a load or save is in flight.
func (s *Store) Totals() core.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.totals
	t.BalanceSeries = append([]core.Money(nil), s.totals.BalanceSeries...)
	return t
}

// List returns the transactions in insertion order as a snapshot copy.
func (s *Store) List() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.items...)
}

// FilterByPeriod yields the transactions whose OccurredAt falls within the
// given calendar month and year, preserving insertion order. The sequence is
// lazy and restartable; it ranges over a snapshot and never mutates the
// ledger. Periods with no matches yield an empty sequence.
func (s *Store) FilterByPeriod(month time.Month, year int) iter.Seq[core.Transaction] {
	snapshot := s.List()
	return func(yield func(core.Transaction) bool) {
		for _, tx := range snapshot {
			if !tx.InPeriod(month, year) {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// commitLocked recomputes totals and writes the full snapshot through to the
// blob store. Persistence failures are logged and swallowed: the in-memory
// state stays authoritative and the save is skipped.
func (s *Store) commitLocked(ctx context.Context) {
	s.rev++
	s.totals = core.ComputeTotals(s.items)

	blob, err := json.Marshal(s.items)
	if err != nil {
		slog.ErrorContext(ctx, "Ledger snapshot marshal failed, save skipped", "error", err)
		return
	}
	if err := s.blobs.Set(ctx, kv.KeyTransactions, string(blob)); err != nil {
		slog.ErrorContext(ctx, "Ledger save failed, keeping in-memory state",
			"error", err, "transactions", len(s.items))
	}
}

func (s *Store) indexLocked(id string) int {
	for i, tx := range s.items {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// parseAmount normalizes raw amount input to an unsigned magnitude. A
// negative expense is folded to its absolute value (legacy clients sent
// signed deltas); a negative income is rejected.
func parseAmount(raw string, kind core.Kind) (core.Money, error) {
	m, err := core.ParseSignedAmount(raw)
	if err != nil {
		return core.Money{}, err
	}
	if m.Cents < 0 {
		if kind == core.Income {
			return core.Money{}, core.ErrNegativeIncome
		}
		m = m.Abs()
	}
	return m, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

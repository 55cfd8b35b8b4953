package core

// Totals is the aggregate derived from a transaction sequence. Balance and
// BalanceSeries are signed; TotalIncome and TotalExpense are magnitudes.
type Totals struct {
	Balance       Money
	TotalIncome   Money
	TotalExpense  Money
	BalanceSeries []Money
}

// ComputeTotals derives the aggregate in a single pass over the sequence,
// in insertion order. It is pure: same input, same output, no side effects.
func ComputeTotals(transactions []Transaction) Totals {
	t := Totals{BalanceSeries: make([]Money, 0, len(transactions))}
	var running int64
	for _, tx := range transactions {
		switch tx.Kind {
		case Income:
			t.TotalIncome.Cents += tx.Amount.Cents
		case Expense:
			t.TotalExpense.Cents += tx.Amount.Cents
		}
		running += tx.Signed()
		t.BalanceSeries = append(t.BalanceSeries, Money{Cents: running})
	}
	t.Balance = Money{Cents: running}
	return t
}

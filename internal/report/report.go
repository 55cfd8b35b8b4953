// Package report turns a transaction sequence into the flat row shape shared
// by the CSV, HTML and Sheets renderers.
package report

import "mymoney/internal/core"

// SummaryLabel is the description carried by the trailing balance row.
const SummaryLabel = "Saldo Atual"

// Row is one rendered line of a report. The trailing summary row has an empty
// ID and Kind and carries the final balance in Amount.
type Row struct {
	ID          string
	Description string
	Kind        string
	Amount      string
	Date        string
}

// CategoryTotal is one expense group: all expense transactions sharing a
// description, magnitudes summed.
type CategoryTotal struct {
	Category string
	Total    core.Money
}

// ExpenseByCategory groups expense transactions by description. Groups appear
// in the insertion order of their first occurrence; income transactions are
// ignored.
func ExpenseByCategory(txs []core.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var groups []CategoryTotal
	for _, tx := range txs {
		if tx.Kind != core.Expense {
			continue
		}
		i, ok := index[tx.Description]
		if !ok {
			i = len(groups)
			index[tx.Description] = i
			groups = append(groups, CategoryTotal{Category: tx.Description})
		}
		groups[i].Total.Cents += tx.Amount.Cents
	}
	return groups
}

// BuildRows flattens the transactions into ordered rows and appends the
// summary row with the given balance.
func BuildRows(txs []core.Transaction, balance core.Money) []Row {
	rows := make([]Row, 0, len(txs)+1)
	for _, tx := range txs {
		rows = append(rows, Row{
			ID:          tx.ID,
			Description: tx.Description,
			Kind:        string(tx.Kind),
			Amount:      tx.Amount.String(),
			Date:        tx.OccurredAt.UTC().Format("2006-01-02"),
		})
	}
	rows = append(rows, Row{
		Description: SummaryLabel,
		Amount:      balance.String(),
	})
	return rows
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"mymoney/internal/report"
)

var csvHeader = []string{"ID", "Descrição", "Tipo", "Valor", "Data"}

// WriteCSV serializes the rows as UTF-8 CSV with the report header. The
// trailing summary row comes out as ["", "Saldo Atual", "", <saldo>, ""].
func WriteCSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.ID, r.Description, r.Kind, r.Amount, r.Date}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

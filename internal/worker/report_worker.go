package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"mymoney/internal/amqp"
	"mymoney/internal/core"
	"mymoney/internal/export"
	"mymoney/internal/kv"
	"mymoney/internal/report"
)

// SheetsAppender mirrors the Google Sheets exporter so tests can fake it.
type SheetsAppender interface {
	Append(ctx context.Context, rows []report.Row) error
}

// ReportWorker renders the report files when a request arrives. The sheets
// appender is optional; when absent the target is skipped.
type ReportWorker struct {
	blobs  kv.Store
	files  *export.FileRenderer
	sheets SheetsAppender
}

func NewReportWorker(blobs kv.Store, files *export.FileRenderer, sheets SheetsAppender) *ReportWorker {
	return &ReportWorker{blobs: blobs, files: files, sheets: sheets}
}

// HandleReportRequest loads the ledger snapshot and renders CSV and HTML
// files, then appends to the spreadsheet when configured. A returned error
// requeues the message.
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequestedMessage) error {
	raw, ok, err := w.blobs.Get(ctx, kv.KeyTransactions)
	if err != nil {
		return fmt.Errorf("read ledger snapshot: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "No ledger data, nothing to render")
		return nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		return fmt.Errorf("decode ledger snapshot: %w", err)
	}
	for i := range txs {
		txs[i] = txs[i].Normalize()
	}

	totals := core.ComputeTotals(txs)
	rows := report.BuildRows(txs, totals.Balance)

	if err := w.files.Render(ctx, rows); err != nil {
		return fmt.Errorf("render report files: %w", err)
	}

	if w.sheets == nil {
		slog.InfoContext(ctx, "Sheets export not configured, skipping")
		return nil
	}
	if err := w.sheets.Append(ctx, rows); err != nil {
		return fmt.Errorf("append report to sheets: %w", err)
	}
	return nil
}

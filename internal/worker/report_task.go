// Package worker runs the periodic report task and the report request
// handler on the consumer side.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"mymoney/internal/kv"
)

// Result is the outcome signal of one report task run.
type Result string

const (
	ResultNewData Result = "new-data"
	ResultNoData  Result = "no-data"
	ResultFailed  Result = "failed"
)

// MinInterval is the floor for the task period. Shorter configured intervals
// are clamped up.
const MinInterval = 24 * time.Hour

// Publisher hands a report request to the worker queue.
type Publisher interface {
	PublishReportRequested(ctx context.Context, transactions int) error
}

// ReportTask periodically checks the persisted ledger and requests a report
// render when there is data.
type ReportTask struct {
	blobs     kv.Store
	publisher Publisher
	interval  time.Duration
}

func NewReportTask(blobs kv.Store, publisher Publisher, interval time.Duration) *ReportTask {
	if interval < MinInterval {
		interval = MinInterval
	}
	return &ReportTask{blobs: blobs, publisher: publisher, interval: interval}
}

// Run performs one check. It only inspects the persisted blob; the worker
// loads the full snapshot itself when handling the request.
func (t *ReportTask) Run(ctx context.Context) Result {
	raw, ok, err := t.blobs.Get(ctx, kv.KeyTransactions)
	if err != nil {
		slog.ErrorContext(ctx, "Report task failed to read ledger", "error", err)
		return ResultFailed
	}
	if !ok {
		return ResultNoData
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.ErrorContext(ctx, "Report task found corrupt ledger blob", "error", err)
		return ResultFailed
	}
	if len(items) == 0 {
		return ResultNoData
	}

	if err := t.publisher.PublishReportRequested(ctx, len(items)); err != nil {
		slog.ErrorContext(ctx, "Report task failed to publish request",
			"error", err, "transactions", len(items))
		return ResultFailed
	}
	return ResultNewData
}

// Start runs the task immediately and then on every tick until the context
// ends.
func (t *ReportTask) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "Report task started", "interval", t.interval)

	run := func() {
		result := t.Run(ctx)
		slog.InfoContext(ctx, "Report task run finished", "result", string(result))
	}
	run()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Report task stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			run()
		}
	}
}

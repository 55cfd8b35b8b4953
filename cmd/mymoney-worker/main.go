package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"mymoney/internal/amqp"
	"mymoney/internal/config"
	"mymoney/internal/export"
	"mymoney/internal/kv"
	"mymoney/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting mymoney-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	blobs, cleanup, err := kv.NewStore(kv.BackendType(cfg.KVBackend), cfg.SQLiteDBPath, logger)
	if err != nil {
		logger.Error("Failed to initialize blob store", "error", err, "backend", cfg.KVBackend)
		os.Exit(1)
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				logger.Error("Blob store cleanup failed", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	files := export.NewFileRenderer(cfg.ExportDir)

	var sheets worker.SheetsAppender
	if cfg.GoogleSpreadsheetID != "" {
		client, err := export.NewSheetsFromEnv(ctx)
		switch {
		case errors.Is(err, export.ErrUnsupported):
			logger.Info("Sheets export not configured, skipping", "reason", err)
		case err != nil:
			logger.Error("Failed to initialize Sheets exporter", "error", err)
			os.Exit(1)
		default:
			sheets = client
			logger.Info("Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		}
	} else {
		logger.Info("Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.Dial(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reportWorker := worker.NewReportWorker(blobs, files, sheets)

	err = amqpClient.ConsumeReportRequests(ctx, reportWorker.HandleReportRequest)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

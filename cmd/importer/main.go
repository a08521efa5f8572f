// Command importer loads an Excel workbook into the dashboard's database,
// replacing one table per sheet.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/salespulse/salespulse/internal/app"
	"github.com/salespulse/salespulse/internal/importer"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "", "path to the xlsx workbook to import")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	if file == "" {
		logger.Error("missing -file argument")
		os.Exit(2)
	}

	f, err := os.Open(file)
	if err != nil {
		logger.Error("open workbook", slog.Any("error", err))
		os.Exit(1)
	}
	defer f.Close()

	sheets, err := importer.ReadWorkbook(f)
	if err != nil {
		logger.Error("read workbook", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	writer := importer.NewPGWriter(dbpool)
	if err := importer.Import(ctx, logger, writer, sheets); err != nil {
		logger.Error("import workbook", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("import complete",
		slog.String("file", file),
		slog.Int("sheets", len(sheets)),
	)
}

// Command export_trades dumps the journal ledger to a CSV file that
// import_trades can load back.
package main

import (
	"context"
	"flag"
	"log"

	"tradejournal/config"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sectors"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/app"
	"tradejournal/internal/utils"
)

func main() {
	file := flag.String("file", "data/trades_export.csv", "path to write the trade CSV to")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	store, err := sqlite.NewStore(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize ledger store: %v", err)
	}
	defer store.Close()

	service, err := app.NewJournalService(appLogger, store, nil, sectors.NewStatic())
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}

	trades, err := service.ListTrades(ctx)
	if err != nil {
		log.Fatalf("FATAL: Failed to read ledger: %v", err)
	}

	if err := utils.WriteTradesToCSV(trades, *file); err != nil {
		log.Fatalf("FATAL: Failed to write trade CSV: %v", err)
	}

	appLogger.Info(ctx, "Export finished", map[string]interface{}{"file": *file, "trades": len(trades)})
}

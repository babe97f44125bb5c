// Command import_trades bulk-loads a trade CSV into the journal ledger.
// Every row goes through the same validation as the HTTP API. Rows that fail
// validation are skipped and reported; store failures abort the import.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"tradejournal/config"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sectors"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/app"
	"tradejournal/internal/domain"
	"tradejournal/internal/utils"
)

func main() {
	file := flag.String("file", "", "path to the trade CSV to import")
	flag.Parse()
	if *file == "" {
		log.Fatal("FATAL: -file is required")
	}

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

	// Snapshot capture is deliberately disabled for bulk imports; historical
	// rows would otherwise be stamped with today's market context.
	service, err := app.NewJournalService(appLogger, store, nil, sectors.NewStatic())
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}

	drafts, err := utils.ReadTradeDraftsFromCSV(*file)
	if err != nil {
		log.Fatalf("FATAL: Failed to read trade CSV: %v", err)
	}

	imported, rejected := 0, 0
	for i, draft := range drafts {
		if _, err := service.RecordTrade(ctx, draft); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				rejected++
				appLogger.Warn(ctx, "Row rejected", map[string]interface{}{"row": i + 2, "reason": verr.Error()})
				continue
			}
			log.Fatalf("FATAL: Failed to record row %d: %v", i+2, err)
		}
		imported++
	}

	appLogger.Info(ctx, "Import finished", map[string]interface{}{
		"file": *file, "imported": imported, "rejected": rejected,
	})
}

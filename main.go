package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradejournal/config"
	"tradejournal/internal/adapters/binanceclient"
	"tradejournal/internal/adapters/httpapi"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sectors"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/app"
	"tradejournal/internal/ports"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	var appLogger ports.Logger
	if cfg.LogFormat == config.LogFormatJSON {
		appLogger = logger.NewZeroLogger(cfg.LogLevel)
	} else {
		appLogger = logger.NewStdLogger(cfg.LogLevel)
	}
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String(), "format": cfg.LogFormat})

	// 3. Initialize Ledger Store (Database Adapter)
	store, err := sqlite.NewStore(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize ledger store")
		log.Fatalf("FATAL: Failed to initialize ledger store: %v", err) // Also log to stderr
	}
	defer func() {
		if err := store.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing ledger store")
		}
	}()
	appLogger.Info(context.Background(), "Ledger store initialized", map[string]interface{}{"dbPath": cfg.DBPath})

	// 4. Initialize Snapshot Provider (optional)
	var snapshots ports.SnapshotProvider
	if cfg.SnapshotProvider == config.SnapshotProviderBinance {
		client, err := binanceclient.New(binanceclient.Config{
			APIKey:     cfg.BinanceAPIKey,
			SecretKey:  cfg.BinanceSecretKey,
			Logger:     appLogger,
			QuoteAsset: cfg.MarketQuoteAsset,
			KlineLimit: cfg.SnapshotKlineLimit,
		})
		if err != nil {
			appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance snapshot provider")
			log.Fatalf("FATAL: Failed to initialize Binance snapshot provider: %v", err)
		}
		snapshots = client
		appLogger.Info(context.Background(), "Binance snapshot provider initialized")
	} else {
		appLogger.Info(context.Background(), "Snapshot capture disabled")
	}

	// 5. Initialize Sector Lookup
	var sectorLookup ports.SectorLookup
	if cfg.SectorMapPath != "" {
		lookup, err := sectors.NewStaticFromFile(cfg.SectorMapPath)
		if err != nil {
			appLogger.Error(context.Background(), err, "FATAL: Failed to load sector map")
			log.Fatalf("FATAL: Failed to load sector map: %v", err)
		}
		sectorLookup = lookup
	} else {
		sectorLookup = sectors.NewStatic()
	}

	// 6. Initialize Application Service
	journalService, err := app.NewJournalService(appLogger, store, snapshots, sectorLookup)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize journal service")
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}
	appLogger.Info(context.Background(), "Journal service initialized")

	// 7. Initialize HTTP Server
	server, err := httpapi.New(httpapi.Config{
		Port:    cfg.Port,
		Logger:  appLogger,
		Service: journalService,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize HTTP server")
		log.Fatalf("FATAL: Failed to initialize HTTP server: %v", err)
	}

	// 8. Serve until interrupted
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		appLogger.Info(context.Background(), "Shutdown signal received", map[string]interface{}{"signal": sig.String()})
	case err := <-serveErr:
		if err != nil {
			appLogger.Error(context.Background(), err, "HTTP server exited with error")
			log.Fatalf("FATAL: HTTP server exited with error: %v", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(ctx, err, "Graceful shutdown failed")
	}

	appLogger.Info(context.Background(), "Application finished gracefully.")
}

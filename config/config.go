package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tradejournal/internal/adapters/logger" // Import the logger package for LogLevel
)

// Snapshot provider selection.
const (
	SnapshotProviderNone    = "none"
	SnapshotProviderBinance = "binance"
)

// Log output format selection.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all application configuration.
type Config struct {
	// HTTP server
	Port int

	// Database
	DBPath string

	// Logging
	LogLevel  logger.LogLevel // Use the LogLevel type from the logger adapter
	LogFormat string          // "text" or "json"

	// Market snapshots
	SnapshotProvider   string // "binance" or "none"
	BinanceAPIKey      string
	BinanceSecretKey   string
	MarketQuoteAsset   string // Quote asset appended to tickers for snapshot lookups
	SnapshotKlineLimit int    // Daily candles fetched per snapshot

	// Sector classification
	SectorMapPath string // Optional JSON file overriding the built-in sector table
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// HTTP server
	cfg.Port, err = getEnvAsIntRequired("PORT", 8080)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PORT: %v", err))
	} else if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, "PORT must be between 1 and 65535")
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/trade_journal.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", LogFormatText))
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be %q or %q", LogFormatText, LogFormatJSON))
	}

	// Market snapshots
	cfg.SnapshotProvider = strings.ToLower(getEnv("SNAPSHOT_PROVIDER", SnapshotProviderNone))
	switch cfg.SnapshotProvider {
	case SnapshotProviderNone:
		// Snapshots disabled; trades are recorded without market context
		// unless the caller supplies one.
	case SnapshotProviderBinance:
		cfg.BinanceAPIKey = getEnv("BINANCE_API_KEY", "")
		cfg.BinanceSecretKey = getEnv("BINANCE_API_SECRET", "")
		if cfg.BinanceAPIKey == "" {
			errs = append(errs, "BINANCE_API_KEY must be set when SNAPSHOT_PROVIDER=binance")
		}
		if cfg.BinanceSecretKey == "" {
			errs = append(errs, "BINANCE_API_SECRET must be set when SNAPSHOT_PROVIDER=binance")
		}
	default:
		errs = append(errs, fmt.Sprintf("SNAPSHOT_PROVIDER must be %q or %q", SnapshotProviderBinance, SnapshotProviderNone))
	}

	cfg.MarketQuoteAsset = strings.ToUpper(getEnv("MARKET_QUOTE_ASSET", "USDT"))

	cfg.SnapshotKlineLimit, err = getEnvAsIntRequired("SNAPSHOT_KLINE_LIMIT", 60)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SNAPSHOT_KLINE_LIMIT: %v", err))
	} else if cfg.SnapshotKlineLimit <= 0 {
		errs = append(errs, "SNAPSHOT_KLINE_LIMIT must be positive")
	}

	// Sector classification (optional override file)
	cfg.SectorMapPath = getEnv("SECTOR_MAP_PATH", "")

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

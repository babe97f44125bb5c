package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT",
		"SNAPSHOT_PROVIDER", "BINANCE_API_KEY", "BINANCE_API_SECRET",
		"MARKET_QUOTE_ASSET", "SNAPSHOT_KLINE_LIMIT", "SECTOR_MAP_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/trade_journal.db", cfg.DBPath)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
	assert.Equal(t, SnapshotProviderNone, cfg.SnapshotProvider)
	assert.Equal(t, "USDT", cfg.MarketQuoteAsset)
	assert.Equal(t, 60, cfg.SnapshotKlineLimit)
}

func TestLoadConfigBinanceRequiresKeys(t *testing.T) {
	t.Setenv("SNAPSHOT_PROVIDER", "binance")
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_API_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BINANCE_API_KEY")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SNAPSHOT_PROVIDER", "bloomberg")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "SNAPSHOT_PROVIDER")
}

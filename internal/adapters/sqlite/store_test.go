package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestStore creates a temporary ledger database for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(Config{
		DBPath: dbPath,
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTrade(id, ticker string, day int) *domain.Trade {
	return &domain.Trade{
		ID:          id,
		Date:        time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Ticker:      ticker,
		Action:      domain.Buy,
		Price:       185.50,
		Quantity:    10,
		PnL:         8.2,
		Confidence:  85,
		BehaviorTag: "Momentum Chaser",
		Note:        "Bought after a strong earnings report",
		Context: domain.MarketContext{
			CurrentPrice: 200.71,
			RSI:          72.5,
			SMA20:        182.30,
			SMA50:        178.90,
			Volatility:   0.28,
			Sentiment:    domain.SentimentPositive,
		},
	}
}

func TestStore_AppendAndReadAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.Append(ctx, sampleTrade("t-1", "AAPL", 15))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Seq)

	second, err := store.Append(ctx, sampleTrade("t-2", "TSLA", 20))
	require.NoError(t, err)
	assert.Greater(t, second.Seq, first.Seq)

	trades, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// Newest first.
	assert.Equal(t, "t-2", trades[0].ID)
	assert.Equal(t, "t-1", trades[1].ID)

	// Round trip preserves every field, including the snapshot.
	got := trades[1]
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, domain.Buy, got.Action)
	assert.Equal(t, 185.50, got.Price)
	assert.Equal(t, int64(10), got.Quantity)
	assert.Equal(t, 8.2, got.PnL)
	assert.Equal(t, 85, got.Confidence)
	assert.Equal(t, "Momentum Chaser", got.BehaviorTag)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, 72.5, got.Context.RSI)
	assert.Equal(t, domain.SentimentPositive, got.Context.Sentiment)
}

func TestStore_ReadAllEmptyLedger(t *testing.T) {
	store := setupTestStore(t)

	trades, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestStore_AppendDuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, sampleTrade("dup", "AAPL", 15))
	require.NoError(t, err)

	_, err = store.Append(ctx, sampleTrade("dup", "MSFT", 16))
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrDuplicateID)

	// The duplicate must not have been partially appended.
	trades, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, trades, 1)
	assert.Equal(t, "AAPL", trades[0].Ticker)
}

func TestStore_ReadAfterClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "closed.db")
	store, err := NewStore(Config{DBPath: dbPath, Logger: &mockLogger{}})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.ReadAll(context.Background())
	assert.ErrorIs(t, err, ports.ErrStoreUnavailable)
}

func TestStore_CreatesDataDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "journal.db")
	store, err := NewStore(Config{DBPath: dbPath, Logger: &mockLogger{}})
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}

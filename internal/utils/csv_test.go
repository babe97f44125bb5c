package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradejournal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeCSVRoundTrip(t *testing.T) {
	// Input mirrors a ledger read: newest first. The file and the drafts
	// read back from it are oldest first.
	trades := []*domain.Trade{
		{
			ID:          "t2",
			Seq:         2,
			Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			Ticker:      "AAPL",
			Action:      domain.Sell,
			Price:       195.0,
			Quantity:    10,
			PnL:         2.9,
			Confidence:  80,
			BehaviorTag: "Target Reached",
			Note:        "hit the level, out",
		},
		{
			ID:          "t1",
			Seq:         1,
			Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Ticker:      "AAPL",
			Action:      domain.Buy,
			Price:       189.5,
			Quantity:    10,
			Confidence:  70,
			BehaviorTag: "Dip Buyer",
			Note:        "bounce off the 50-day",
		},
	}

	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, WriteTradesToCSV(trades, path))

	drafts, err := ReadTradeDraftsFromCSV(path)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "AAPL", drafts[0].Ticker)
	assert.Equal(t, domain.Buy, drafts[0].Action)
	assert.Equal(t, 189.5, drafts[0].Price)
	assert.Equal(t, int64(10), drafts[0].Quantity)
	assert.Equal(t, trades[1].Date, drafts[0].Date)

	assert.Equal(t, domain.Sell, drafts[1].Action)
	assert.Equal(t, 2.9, drafts[1].PnL)
	assert.Equal(t, "Target Reached", drafts[1].BehaviorTag)
}

func TestTradeCSVRoundTripPreservesInsertionOrder(t *testing.T) {
	// Two buys on the same date can only be told apart by insertion order,
	// and FIFO linkage depends on it. The earlier-inserted lot must come
	// back as the first draft so re-recording assigns it the lower sequence.
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	trades := []*domain.Trade{
		{ID: "t2", Seq: 2, Date: day, Ticker: "AAPL", Action: domain.Buy, Price: 110, Quantity: 5, Confidence: 70, BehaviorTag: "Dip Buyer", Note: "second"},
		{ID: "t1", Seq: 1, Date: day, Ticker: "AAPL", Action: domain.Buy, Price: 100, Quantity: 5, Confidence: 70, BehaviorTag: "Dip Buyer", Note: "first"},
	}

	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, WriteTradesToCSV(trades, path))

	drafts, err := ReadTradeDraftsFromCSV(path)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "first", drafts[0].Note)
	assert.Equal(t, 100.0, drafts[0].Price)
	assert.Equal(t, "second", drafts[1].Note)
	assert.Equal(t, 110.0, drafts[1].Price)
}

func TestReadTradeDraftsRejectsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "date,ticker,action,price,quantity,pnl,confidence,behavior_tag,note\n" +
		"2025-03-10,AAPL,Buy,not-a-price,10,0,70,Dip Buyer,note\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ReadTradeDraftsFromCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
}

func TestReadTradeDraftsRejectsWrongColumnCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,ticker\n"), 0o644))

	_, err := ReadTradeDraftsFromCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

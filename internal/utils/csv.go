package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"tradejournal/internal/domain"
)

const dateLayout = "2006-01-02"

var tradeHeader = []string{"date", "ticker", "action", "price", "quantity", "pnl", "confidence", "behavior_tag", "note"}

// WriteTradesToCSV exports ledger trades to a CSV file, oldest first. The
// ledger reads newest first, so rows are written in reverse: importing the
// file top-down then reassigns insertion sequences in the original order,
// which keeps same-date FIFO tie-breaks intact. Market context is not
// exported; it is recaptured on import when a snapshot provider is configured.
func WriteTradesToCSV(trades []*domain.Trade, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write(tradeHeader)

	for i := len(trades) - 1; i >= 0; i-- {
		t := trades[i]
		writer.Write([]string{
			t.Date.Format(dateLayout),
			t.Ticker,
			string(t.Action),
			strconv.FormatFloat(t.Price, 'f', -1, 64),
			strconv.FormatInt(t.Quantity, 10),
			strconv.FormatFloat(t.PnL, 'f', -1, 64),
			strconv.Itoa(t.Confidence),
			t.BehaviorTag,
			t.Note,
		})
	}
	return writer.Error()
}

// ReadTradeDraftsFromCSV parses a trade CSV produced by WriteTradesToCSV (or
// hand-written in the same layout) into drafts ready for recording. Rows are
// not validated here; the journal service validates each draft on record.
func ReadTradeDraftsFromCSV(filename string) ([]domain.TradeDraft, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV %s is empty", filename)
	}
	if len(rows[0]) != len(tradeHeader) {
		return nil, fmt.Errorf("CSV %s: expected %d columns, got %d", filename, len(tradeHeader), len(rows[0]))
	}

	drafts := make([]domain.TradeDraft, 0, len(rows)-1)
	for i, row := range rows[1:] {
		draft, err := parseTradeRow(row)
		if err != nil {
			return nil, fmt.Errorf("CSV %s row %d: %w", filename, i+2, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func parseTradeRow(row []string) (domain.TradeDraft, error) {
	var draft domain.TradeDraft

	date, err := time.Parse(dateLayout, row[0])
	if err != nil {
		return draft, fmt.Errorf("invalid date %q: %w", row[0], err)
	}
	price, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return draft, fmt.Errorf("invalid price %q: %w", row[3], err)
	}
	quantity, err := strconv.ParseInt(row[4], 10, 64)
	if err != nil {
		return draft, fmt.Errorf("invalid quantity %q: %w", row[4], err)
	}
	pnl, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return draft, fmt.Errorf("invalid pnl %q: %w", row[5], err)
	}
	confidence, err := strconv.Atoi(row[6])
	if err != nil {
		return draft, fmt.Errorf("invalid confidence %q: %w", row[6], err)
	}

	draft.Date = date
	draft.Ticker = row[1]
	draft.Action = domain.Action(row[2])
	draft.Price = price
	draft.Quantity = quantity
	draft.PnL = pnl
	draft.Confidence = confidence
	draft.BehaviorTag = row[7]
	draft.Note = row[8]
	return draft, nil
}

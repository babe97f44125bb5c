// Package sectors provides a static ticker-to-sector lookup. The table ships
// with a built-in default and can be extended or overridden from a JSON file.
package sectors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// defaultTable covers the tickers the journal is commonly used with.
var defaultTable = map[string]string{
	"AAPL":  "Technology",
	"MSFT":  "Technology",
	"NVDA":  "Technology",
	"GOOGL": "Technology",
	"META":  "Technology",
	"AMZN":  "Consumer Discretionary",
	"TSLA":  "Consumer Discretionary",
	"JPM":   "Financials",
	"BAC":   "Financials",
	"V":     "Financials",
	"JNJ":   "Health Care",
	"PFE":   "Health Care",
	"UNH":   "Health Care",
	"XOM":   "Energy",
	"CVX":   "Energy",
	"KO":    "Consumer Staples",
	"PG":    "Consumer Staples",
	"BA":    "Industrials",
	"CAT":   "Industrials",
	"DIS":   "Communication Services",
	"NFLX":  "Communication Services",
}

// Static implements ports.SectorLookup over an in-memory table.
type Static struct {
	table map[string]string
}

// NewStatic returns a lookup over the built-in table.
func NewStatic() *Static {
	table := make(map[string]string, len(defaultTable))
	for ticker, sector := range defaultTable {
		table[ticker] = sector
	}
	return &Static{table: table}
}

// NewStaticFromFile returns the built-in table merged with the entries from a
// JSON file of the form {"TICKER": "Sector", ...}. File entries win.
func NewStaticFromFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sector map '%s': %w", path, err)
	}

	overrides := make(map[string]string)
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse sector map '%s': %w", path, err)
	}

	s := NewStatic()
	for ticker, sector := range overrides {
		s.table[strings.ToUpper(strings.TrimSpace(ticker))] = sector
	}
	return s, nil
}

// Sector returns the sector for a ticker, and whether it is mapped.
func (s *Static) Sector(ticker string) (string, bool) {
	sector, ok := s.table[strings.ToUpper(ticker)]
	return sector, ok
}

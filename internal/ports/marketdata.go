package ports

import (
	"context"

	"tradejournal/internal/domain"
)

// SnapshotProvider captures a market context for a ticker. It is invoked once
// at trade creation; the journal stores the returned snapshot verbatim and
// never recomputes it.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, ticker string) (domain.MarketContext, error)
}

// SectorLookup maps a ticker to its market sector. Tickers without a mapping
// are reported under an explicit "Unclassified" sector by the aggregator.
type SectorLookup interface {
	Sector(ticker string) (string, bool)
}

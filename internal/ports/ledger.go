package ports

import (
	"context"

	"tradejournal/internal/domain"
)

// LedgerStore is the append-only persistence contract for the trade ledger.
// The ledger is never updated or deleted through this interface.
type LedgerStore interface {
	// ReadAll retrieves every trade, newest first by insertion sequence.
	// Fails with ErrStoreUnavailable when the ledger cannot be read.
	ReadAll(ctx context.Context) ([]*domain.Trade, error)

	// Append stores a new trade and returns it with its insertion sequence
	// assigned. Fails with ErrDuplicateID when the trade's ID is already
	// present, or ErrStoreUnavailable when the ledger cannot be written.
	Append(ctx context.Context, trade *domain.Trade) (*domain.Trade, error)
}

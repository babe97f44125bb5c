package ports

import "errors"

// Standard application-level errors.
// Adapters wrap underlying infrastructure errors with these sentinels.
var (
	// ErrStoreUnavailable means the ledger could not be read or written. It is
	// the only condition that aborts a journal operation outright; callers must
	// surface it rather than silently substitute an empty ledger.
	ErrStoreUnavailable = errors.New("ledger store is unavailable")

	// ErrDuplicateID means a trade with the same ID already exists in the
	// ledger. IDs are assigned once and never reused.
	ErrDuplicateID = errors.New("trade id already exists in the ledger")

	// ErrSnapshotUnavailable means the market snapshot provider could not
	// capture a context for the requested ticker.
	ErrSnapshotUnavailable = errors.New("market snapshot is unavailable")

	ErrNotFound      = errors.New("resource not found")
	ErrConfiguration = errors.New("invalid or missing configuration")
)

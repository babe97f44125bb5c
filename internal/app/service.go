package app

import (
	"context"
	"fmt"
	"strings"

	"tradejournal/internal/domain"
	"tradejournal/internal/journal/linkage"
	"tradejournal/internal/journal/statistics"
	"tradejournal/internal/ports"

	"github.com/google/uuid"
)

// Filter restricts which trades a statistics query covers. Zero fields match
// everything.
type Filter struct {
	Ticker      string
	BehaviorTag string
}

// JournalService orchestrates the trade journal: it is the only component
// that touches the ledger store, and it computes every derived view (linkage,
// statistics, positions) fresh from a single ledger snapshot per call.
type JournalService struct {
	logger    ports.Logger
	store     ports.LedgerStore
	snapshots ports.SnapshotProvider // Optional; nil disables snapshot capture
	sectors   ports.SectorLookup
}

// NewJournalService creates a new journal service instance.
func NewJournalService(
	logger ports.Logger,
	store ports.LedgerStore,
	snapshots ports.SnapshotProvider,
	sectors ports.SectorLookup,
) (*JournalService, error) {
	if logger == nil || store == nil || sectors == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	return &JournalService{
		logger:    logger,
		store:     store,
		snapshots: snapshots,
		sectors:   sectors,
	}, nil
}

// ListTrades returns the full ledger, newest first.
func (s *JournalService) ListTrades(ctx context.Context) ([]*domain.Trade, error) {
	return s.readLedger(ctx)
}

// RecordTrade validates the draft, captures a market snapshot when the draft
// carries none, assigns a unique ID, and appends the trade to the ledger.
// Validation failures are returned as *domain.ValidationError; the ledger is
// never partially appended.
func (s *JournalService) RecordTrade(ctx context.Context, draft domain.TradeDraft) (*domain.Trade, error) {
	draft.Normalize()
	if verr := draft.Validate(); verr != nil {
		s.logger.Debug(ctx, "Trade draft rejected", map[string]interface{}{"reason": verr.Error()})
		return nil, verr
	}

	if draft.Context.IsZero() && s.snapshots != nil {
		snapshot, err := s.snapshots.Snapshot(ctx, draft.Ticker)
		if err != nil {
			// A missing snapshot does not block the journal entry; the trade
			// is recorded without market context.
			s.logger.Warn(ctx, "Market snapshot capture failed", map[string]interface{}{
				"ticker": draft.Ticker, "error": err.Error(),
			})
		} else {
			draft.Context = snapshot
		}
	}

	trade := &domain.Trade{
		ID:          uuid.NewString(),
		Date:        draft.Date,
		Ticker:      draft.Ticker,
		Action:      draft.Action,
		Price:       draft.Price,
		Quantity:    draft.Quantity,
		PnL:         draft.PnL,
		Confidence:  draft.Confidence,
		BehaviorTag: draft.BehaviorTag,
		Note:        draft.Note,
		Context:     draft.Context,
	}

	stored, err := s.store.Append(ctx, trade)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to append trade", map[string]interface{}{"ticker": trade.Ticker})
		return nil, fmt.Errorf("failed to record trade: %w", err)
	}

	s.logger.Info(ctx, "Trade recorded", map[string]interface{}{
		"tradeID": stored.ID, "ticker": stored.Ticker, "action": stored.Action, "quantity": stored.Quantity,
	})
	return stored, nil
}

// GetSummary computes the headline statistics over the ledger, optionally
// restricted by the filter. An empty result set yields the zero-value
// summary, never an error.
func (s *JournalService) GetSummary(ctx context.Context, filter Filter) (statistics.Summary, error) {
	trades, err := s.readLedger(ctx)
	if err != nil {
		return statistics.Summary{}, err
	}
	return statistics.Summarize(applyFilter(trades, filter)), nil
}

// GetLinkage returns the FIFO link results for every Sell of the ticker.
func (s *JournalService) GetLinkage(ctx context.Context, ticker string) ([]*domain.LinkResult, error) {
	trades, err := s.readLedger(ctx)
	if err != nil {
		return nil, err
	}
	return linkage.Resolve(trades, strings.ToUpper(ticker)), nil
}

// GetPosition returns the open Buy lots that remain for the ticker after
// replaying the full ledger.
func (s *JournalService) GetPosition(ctx context.Context, ticker string) (*domain.Position, error) {
	trades, err := s.readLedger(ctx)
	if err != nil {
		return nil, err
	}
	return linkage.OpenPosition(trades, strings.ToUpper(ticker)), nil
}

// GetBehaviorStats aggregates the full ledger per behavior tag.
func (s *JournalService) GetBehaviorStats(ctx context.Context) ([]statistics.TagPerformance, error) {
	trades, err := s.readLedger(ctx)
	if err != nil {
		return nil, err
	}
	return statistics.GroupByBehaviorTag(trades), nil
}

// GetSectorAllocation aggregates the full ledger per market sector.
func (s *JournalService) GetSectorAllocation(ctx context.Context) ([]statistics.SectorAllocation, error) {
	trades, err := s.readLedger(ctx)
	if err != nil {
		return nil, err
	}
	return statistics.GroupBySector(trades, s.sectors), nil
}

// readLedger takes the one immutable snapshot every derived computation works
// on. Each operation reads exactly once, so a concurrent append is either
// fully visible or not at all.
func (s *JournalService) readLedger(ctx context.Context) ([]*domain.Trade, error) {
	trades, err := s.store.ReadAll(ctx)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to read ledger")
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return trades, nil
}

func applyFilter(trades []*domain.Trade, filter Filter) []*domain.Trade {
	if filter.Ticker == "" && filter.BehaviorTag == "" {
		return trades
	}
	ticker := strings.ToUpper(filter.Ticker)
	filtered := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if ticker != "" && t.Ticker != ticker {
			continue
		}
		if filter.BehaviorTag != "" && t.BehaviorTag != filter.BehaviorTag {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Package linkage reconstructs which prior Buy lots each Sell trade closes
// out, using FIFO consumption: within a ticker, trades replay in date order
// (ties broken by ledger insertion sequence, oldest first) and every Sell
// draws from the oldest open lot first. Each unit of a Buy lot is assigned to
// at most one Sell. All functions are pure over the ledger snapshot they are
// given and never mutate it.
package linkage

import (
	"sort"

	"tradejournal/internal/domain"
)

// openLot tracks the unconsumed remainder of one Buy trade during a replay.
type openLot struct {
	trade     *domain.Trade
	remaining int64
}

// Resolve computes a LinkResult for every Sell trade of the ticker, in
// chronological order. Over-sells are reported via LinkResult.Shortfall, not
// treated as errors; whatever was matched stands as a partial link.
func Resolve(trades []*domain.Trade, ticker string) []*domain.LinkResult {
	results, _ := replay(trades, ticker)
	return results
}

// OpenPosition replays the full ledger for the ticker and returns the open
// Buy lots that remain, oldest first.
func OpenPosition(trades []*domain.Trade, ticker string) *domain.Position {
	_, queue := replay(trades, ticker)

	pos := &domain.Position{Ticker: ticker, Lots: make([]domain.Lot, 0, len(queue))}
	var weighted float64
	for _, lot := range queue {
		pos.Lots = append(pos.Lots, domain.Lot{
			TradeID:   lot.trade.ID,
			Date:      lot.trade.Date,
			Price:     lot.trade.Price,
			Remaining: lot.remaining,
		})
		pos.Shares += lot.remaining
		weighted += lot.trade.Price * float64(lot.remaining)
	}
	if pos.Shares > 0 {
		pos.AvgCost = weighted / float64(pos.Shares)
	}
	return pos
}

// replay runs the FIFO consumption algorithm over the ticker's trades and
// returns the per-Sell results plus the open lots left at the end.
func replay(trades []*domain.Trade, ticker string) ([]*domain.LinkResult, []*openLot) {
	ordered := chronological(trades, ticker)

	var queue []*openLot
	var results []*domain.LinkResult

	for _, t := range ordered {
		switch t.Action {
		case domain.Buy:
			queue = append(queue, &openLot{trade: t, remaining: t.Quantity})
		case domain.Sell:
			res, rest := consume(queue, t)
			queue = rest
			results = append(results, res)
		}
	}
	return results, queue
}

// consume draws the Sell's quantity from the front of the lot queue and
// returns the link result together with the queue of lots still open.
func consume(queue []*openLot, sell *domain.Trade) (*domain.LinkResult, []*openLot) {
	res := &domain.LinkResult{
		SellTradeID: sell.ID,
		Ticker:      sell.Ticker,
		Consumed:    make([]domain.LotPortion, 0, len(queue)),
	}

	need := sell.Quantity
	var costTotal float64
	var consumed int64

	for _, lot := range queue {
		if need == 0 {
			break
		}
		take := need
		if lot.remaining < take {
			take = lot.remaining
		}
		lot.remaining -= take
		need -= take
		consumed += take
		costTotal += lot.trade.Price * float64(take)
		res.Consumed = append(res.Consumed, domain.LotPortion{
			BuyTradeID: lot.trade.ID,
			Quantity:   take,
			Price:      lot.trade.Price,
		})
	}

	// Anything still needed after the queue is exhausted is an over-sell.
	res.Shortfall = need

	if consumed > 0 {
		res.CostBasisKnown = true
		res.AvgCostBasis = costTotal / float64(consumed)
		res.RealizedPnLPct = (sell.Price - res.AvgCostBasis) / res.AvgCostBasis * 100
	}

	rest := queue[:0]
	for _, lot := range queue {
		if lot.remaining > 0 {
			rest = append(rest, lot)
			res.RemainingShares += lot.remaining
		}
	}
	return res, rest
}

// chronological filters the ledger down to one ticker and orders it oldest
// first by date, falling back to insertion sequence for same-date trades.
func chronological(trades []*domain.Trade, ticker string) []*domain.Trade {
	ordered := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.Ticker == ticker {
			ordered = append(ordered, t)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].Seq < ordered[j].Seq
	})
	return ordered
}

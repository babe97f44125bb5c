package linkage

import (
	"testing"
	"time"

	"tradejournal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func trade(id string, seq int64, d time.Time, ticker string, action domain.Action, price float64, qty int64) *domain.Trade {
	return &domain.Trade{
		ID:       id,
		Seq:      seq,
		Date:     d,
		Ticker:   ticker,
		Action:   action,
		Price:    price,
		Quantity: qty,
	}
}

func TestResolveFIFOAcrossLots(t *testing.T) {
	// Buy 10@100 day 1, Buy 5@110 day 2, Sell 12 day 3.
	// Newest-first input order, as the store returns it.
	ledger := []*domain.Trade{
		trade("s1", 3, day(3), "AAPL", domain.Sell, 120, 12),
		trade("b2", 2, day(2), "AAPL", domain.Buy, 110, 5),
		trade("b1", 1, day(1), "AAPL", domain.Buy, 100, 10),
	}

	results := Resolve(ledger, "AAPL")
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "s1", res.SellTradeID)
	require.Len(t, res.Consumed, 2)
	assert.Equal(t, domain.LotPortion{BuyTradeID: "b1", Quantity: 10, Price: 100}, res.Consumed[0])
	assert.Equal(t, domain.LotPortion{BuyTradeID: "b2", Quantity: 2, Price: 110}, res.Consumed[1])

	assert.True(t, res.CostBasisKnown)
	assert.InDelta(t, 101.6667, res.AvgCostBasis, 0.0001) // (1000+220)/12
	assert.Equal(t, int64(3), res.RemainingShares)
	assert.Zero(t, res.Shortfall)
	assert.InDelta(t, (120-101.6667)/101.6667*100, res.RealizedPnLPct, 0.001)
}

func TestResolveOverSellWithoutPriorBuy(t *testing.T) {
	ledger := []*domain.Trade{
		trade("s1", 1, day(1), "AAPL", domain.Sell, 90, 5),
	}

	results := Resolve(ledger, "AAPL")
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, int64(5), res.Shortfall)
	assert.Empty(t, res.Consumed)
	assert.False(t, res.CostBasisKnown)
	assert.Zero(t, res.AvgCostBasis) // no fabricated cost basis
	assert.Zero(t, res.RemainingShares)
}

func TestResolvePartialLinkOnOverSell(t *testing.T) {
	ledger := []*domain.Trade{
		trade("b1", 1, day(1), "TSLA", domain.Buy, 200, 3),
		trade("s1", 2, day(2), "TSLA", domain.Sell, 210, 5),
	}

	results := Resolve(ledger, "TSLA")
	require.Len(t, results, 1)

	res := results[0]
	require.Len(t, res.Consumed, 1)
	assert.Equal(t, int64(3), res.Consumed[0].Quantity)
	assert.Equal(t, int64(2), res.Shortfall)
	assert.True(t, res.CostBasisKnown)
	assert.Equal(t, 200.0, res.AvgCostBasis) // only the matched units
}

func TestResolveNoDoubleConsumption(t *testing.T) {
	// Three sells against a single 10-unit lot: consumption assignments must
	// form a disjoint cover of the lot's units.
	ledger := []*domain.Trade{
		trade("b1", 1, day(1), "MSFT", domain.Buy, 400, 10),
		trade("s1", 2, day(2), "MSFT", domain.Sell, 410, 4),
		trade("s2", 3, day(3), "MSFT", domain.Sell, 420, 4),
		trade("s3", 4, day(4), "MSFT", domain.Sell, 430, 4),
	}

	results := Resolve(ledger, "MSFT")
	require.Len(t, results, 3)

	var totalConsumed int64
	for _, res := range results {
		totalConsumed += res.ConsumedQuantity()
	}
	assert.Equal(t, int64(10), totalConsumed)

	// The last sell only finds the 2 units left over.
	assert.Equal(t, int64(2), results[2].ConsumedQuantity())
	assert.Equal(t, int64(2), results[2].Shortfall)
}

func TestResolveSameDateFallsBackToInsertionOrder(t *testing.T) {
	// Two buys on the same date: the one appended first is consumed first.
	ledger := []*domain.Trade{
		trade("b1", 1, day(1), "NVDA", domain.Buy, 600, 5),
		trade("b2", 2, day(1), "NVDA", domain.Buy, 650, 5),
		trade("s1", 3, day(2), "NVDA", domain.Sell, 700, 5),
	}

	results := Resolve(ledger, "NVDA")
	require.Len(t, results, 1)
	require.Len(t, results[0].Consumed, 1)
	assert.Equal(t, "b1", results[0].Consumed[0].BuyTradeID)
	assert.Equal(t, 600.0, results[0].AvgCostBasis)
}

func TestResolveIgnoresOtherTickers(t *testing.T) {
	ledger := []*domain.Trade{
		trade("b1", 1, day(1), "AAPL", domain.Buy, 100, 10),
		trade("b2", 2, day(1), "TSLA", domain.Buy, 200, 10),
		trade("s1", 3, day(2), "AAPL", domain.Sell, 110, 10),
	}

	results := Resolve(ledger, "AAPL")
	require.Len(t, results, 1)
	require.Len(t, results[0].Consumed, 1)
	assert.Equal(t, "b1", results[0].Consumed[0].BuyTradeID)
}

func TestResolveCostBasisBounds(t *testing.T) {
	ledger := []*domain.Trade{
		trade("b1", 1, day(1), "AMZN", domain.Buy, 90, 4),
		trade("b2", 2, day(2), "AMZN", domain.Buy, 130, 4),
		trade("b3", 3, day(3), "AMZN", domain.Buy, 110, 4),
		trade("s1", 4, day(4), "AMZN", domain.Sell, 150, 10),
	}

	results := Resolve(ledger, "AMZN")
	require.Len(t, results, 1)
	res := results[0]
	assert.GreaterOrEqual(t, res.AvgCostBasis, 90.0)
	assert.LessOrEqual(t, res.AvgCostBasis, 130.0)
}

func TestResolveIsDeterministicAndPure(t *testing.T) {
	ledger := []*domain.Trade{
		trade("s2", 5, day(4), "AAPL", domain.Sell, 130, 4),
		trade("s1", 4, day(3), "AAPL", domain.Sell, 120, 12),
		trade("b3", 3, day(2), "AAPL", domain.Buy, 115, 6),
		trade("b2", 2, day(2), "AAPL", domain.Buy, 110, 5),
		trade("b1", 1, day(1), "AAPL", domain.Buy, 100, 10),
	}

	first := Resolve(ledger, "AAPL")
	second := Resolve(ledger, "AAPL")
	require.Equal(t, first, second)

	// Input snapshot stays untouched: quantities are not consumed in place.
	assert.Equal(t, int64(10), ledger[4].Quantity)
	assert.Equal(t, domain.Sell, ledger[0].Action)
}

func TestOpenPosition(t *testing.T) {
	ledger := []*domain.Trade{
		trade("b1", 1, day(1), "AAPL", domain.Buy, 100, 10),
		trade("b2", 2, day(2), "AAPL", domain.Buy, 110, 5),
		trade("s1", 3, day(3), "AAPL", domain.Sell, 120, 12),
	}

	pos := OpenPosition(ledger, "AAPL")
	assert.Equal(t, "AAPL", pos.Ticker)
	require.Len(t, pos.Lots, 1)
	assert.Equal(t, domain.Lot{TradeID: "b2", Date: day(2), Price: 110, Remaining: 3}, pos.Lots[0])
	assert.Equal(t, int64(3), pos.Shares)
	assert.Equal(t, 110.0, pos.AvgCost)
}

func TestOpenPositionFlat(t *testing.T) {
	ledger := []*domain.Trade{
		trade("b1", 1, day(1), "AAPL", domain.Buy, 100, 10),
		trade("s1", 2, day(2), "AAPL", domain.Sell, 120, 10),
	}

	pos := OpenPosition(ledger, "AAPL")
	assert.Empty(t, pos.Lots)
	assert.Zero(t, pos.Shares)
	assert.Zero(t, pos.AvgCost)
}

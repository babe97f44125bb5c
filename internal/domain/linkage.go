package domain

import "time"

// Lot is the not-yet-consumed remainder of one Buy trade.
type Lot struct {
	TradeID   string    `json:"tradeId"`
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
	Remaining int64     `json:"remaining"`
}

// LotPortion records how many units of one Buy lot a Sell consumed.
type LotPortion struct {
	BuyTradeID string  `json:"buyTradeId"`
	Quantity   int64   `json:"quantity"`
	Price      float64 `json:"price"`
}

// LinkResult describes how one Sell trade was covered by prior Buy lots under
// FIFO consumption. It is derived on every query and never persisted.
//
// When nothing could be consumed, CostBasisKnown is false and AvgCostBasis is
// zero rather than a fabricated value. A non-zero Shortfall marks an
// over-sell: the ledger held fewer open units than the Sell's quantity.
type LinkResult struct {
	SellTradeID     string       `json:"sellTradeId"`
	Ticker          string       `json:"ticker"`
	Consumed        []LotPortion `json:"consumed"`
	AvgCostBasis    float64      `json:"avgCostBasis"`
	CostBasisKnown  bool         `json:"costBasisKnown"`
	RealizedPnLPct  float64      `json:"realizedPnlPct"`
	RemainingShares int64        `json:"remainingShares"`
	Shortfall       int64        `json:"shortfall"`
}

// ConsumedQuantity returns the total units this Sell drew from prior lots.
func (r *LinkResult) ConsumedQuantity() int64 {
	var total int64
	for _, p := range r.Consumed {
		total += p.Quantity
	}
	return total
}

// Position is the ordered sequence of open Buy lots for one ticker after
// replaying the full ledger. Derived, never stored.
type Position struct {
	Ticker  string  `json:"ticker"`
	Lots    []Lot   `json:"lots"`
	Shares  int64   `json:"shares"`
	AvgCost float64 `json:"avgCost"` // Weighted by remaining quantity; 0 when flat
}
